package formatting

import (
	"fmt"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// FormatPrice форматирует цену из грошей в злотые
func FormatPrice(grosze int) string {
	if grosze%100 == 0 {
		return fmt.Sprintf("%d zł", grosze/100)
	}
	return fmt.Sprintf("%d,%02d zł", grosze/100, grosze%100)
}

// FormatLessonPrice цена занятия с пометкой, за всё или с человека
func FormatLessonPrice(priceType model.PriceType, grosze int) string {
	if priceType == model.PriceTypePerPerson {
		return FormatPrice(grosze) + "/os."
	}
	return FormatPrice(grosze) + " (całość)"
}
