package calendar

import "time"

var weekdayNames = [...]string{"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota"}

var weekdayShort = [...]string{"Nd", "Pn", "Wt", "Śr", "Cz", "Pt", "Sb"}

var monthNames = [...]string{"", "styczeń", "luty", "marzec", "kwiecień", "maj", "czerwiec",
	"lipiec", "sierpień", "wrzesień", "październik", "listopad", "grudzień"}

var monthGenitive = [...]string{"", "stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia"}

func WeekdayName(d time.Weekday) string { return weekdayNames[d] }

func WeekdayShort(d time.Weekday) string { return weekdayShort[d] }

func MonthName(m time.Month) string { return monthNames[m] }

// MonthNameGenitive форма месяца после числа ("15 stycznia")
func MonthNameGenitive(m time.Month) string { return monthGenitive[m] }
