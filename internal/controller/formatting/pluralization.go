package formatting

// PluralizeLessons склонение слова "zajęcia" по-польски
func PluralizeLessons(count int) string {
	return polish(count, "lekcja", "lekcje", "lekcji")
}

// PluralizeStudents склонение слова "uczeń"
func PluralizeStudents(count int) string {
	return polish(count, "uczeń", "uczniów", "uczniów")
}

// polish выбирает форму: 1 lekcja, 2-4 lekcje, 5+ lekcji (12-14 тоже lekcji)
func polish(count int, one, few, many string) string {
	if count == 1 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 12 || count%100 > 14) {
		return few
	}
	return many
}
