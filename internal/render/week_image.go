// Package render рисует изображения расписания для бота и API.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 150
	dayPaddingX      = 6
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	daysInWeek       = 7
	textMaxRunes     = 18
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	slotTimeFontSize   = 16.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	lessonPaidColor    = color.RGBA{133, 193, 85, 220}
	lessonPartialColor = color.RGBA{250, 204, 90, 230}
	lessonUnpaidColor  = color.RGBA{255, 182, 193, 255}
	lessonEmptyColor   = color.RGBA{190, 200, 215, 220}
	slotTextColor      = color.RGBA{20, 24, 28, 230}
	slotShadowColor    = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// WeekOptions параметры отрисовки недели
type WeekOptions struct {
	FirstWeekday time.Weekday
	Today        model.Date
	// Now нужен для линии текущего времени; нулевое значение линию не рисует
	Now time.Time
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

func fonts() map[FontStyle]*opentype.Font {
	fontsOnce.Do(func() {
		parsedFonts = make(map[FontStyle]*opentype.Font)
		for style, data := range map[FontStyle][]byte{
			FontStyleDefault: goregular.TTF,
			FontStyleMedium:  gomedium.TTF,
			FontStyleBold:    gobold.TTF,
		} {
			if f, err := opentype.Parse(data); err == nil {
				parsedFonts[style] = f
			}
		}
	})
	return parsedFonts
}

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	parsed, ok := fonts()[style]
	if !ok {
		parsed, ok = fonts()[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage рисует PNG недели, в которую входит day. Цвет занятия зависит от статуса оплаты.
func WeekImage(day model.Date, byDay map[model.Date][]model.Lesson, opts WeekOptions) ([]byte, error) {
	days := calendar.DaysInView(calendar.ViewWeek, day, opts.FirstWeekday)
	hours := calendar.HourSlots()
	firstHour := hours[0].Hour()
	totalHours := len(hours)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(totalHours)

	drawHeader(dc, days[0], days[len(days)-1])
	drawHourLabels(dc, hours, cellHeight)

	todayIndex := -1
	for i, d := range days {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		isToday := d == opts.Today
		if isToday {
			todayIndex = i
		}

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, isToday)
		drawDayHeader(dc, d, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, totalHours, cellHeight)
		for _, l := range byDay[d] {
			drawLesson(dc, l, x, y, dayWidth, firstHour, cellHeight)
		}
	}

	if todayIndex >= 0 && !opts.Now.IsZero() {
		drawCurrentTimeLine(dc, opts.Now, firstHour, totalHours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, start, end model.Date) {
	title := calendar.MonthName(start.Month)
	if start.Month != end.Month {
		title += " - " + calendar.MonthName(end.Month)
	}
	title = fmt.Sprintf("%s %d", title, end.Year)

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours []model.ClockTime, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for i, h := range hours {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(h.String(), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, d model.Date, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("%02d.%02d", d.Day, int(d.Month)), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(calendar.WeekdayShort(d.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth, totalHours int, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= totalHours; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawLesson рисует одно занятие; вне сетки 08-22 обрезается по краям
func drawLesson(dc *gg.Context, l model.Lesson, x, y float64, dayWidth, firstHour int, cellHeight float64) {
	start := float64(l.StartTime.Minutes()) / 60.0
	end := float64(l.EndTime().Minutes()) / 60.0

	slotY := y + (start-float64(firstHour))*cellHeight
	slotHeight := (end - start) * cellHeight
	if slotY < y {
		slotHeight -= y - slotY
		slotY = y
	}
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := lessonColor(paymentState(l))
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	loadFont(dc, slotTimeFontSize, FontStyleMedium)
	dc.SetColor(slotTextColor)
	txtX := x + dayPaddingX + 6
	txtY := slotY + 18
	dc.DrawStringAnchored(l.StartTime.String()+"-"+l.EndTime().String(), txtX, txtY, 0, 0)

	if slotHeight > 30 {
		loadFont(dc, slotTimeFontSize-3, FontStyleDefault)
		dc.DrawStringAnchored(truncate(l.Summary(), textMaxRunes), txtX, txtY+16, 0, 0)
	}
	if slotHeight > 48 && l.Teacher != "" {
		dc.DrawStringAnchored(truncate(l.Teacher, textMaxRunes), txtX, txtY+31, 0, 0)
	}
}

func paymentState(l model.Lesson) model.PaymentState {
	return schedule.PaymentStatusOf(l).State()
}

// lessonColor возвращает цвет занятия по статусу оплаты
func lessonColor(state model.PaymentState) color.RGBA {
	switch state {
	case model.PaymentFullyPaid:
		return lessonPaidColor
	case model.PaymentPartial:
		return lessonPartialColor
	case model.PaymentUnpaid:
		return lessonUnpaidColor
	default:
		return lessonEmptyColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, firstHour, totalHours int, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(firstHour) || currentHour > float64(firstHour+totalHours) {
		return
	}

	y := float64(headerHeight) + (currentHour-float64(firstHour))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+daysInWeek*dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Opłacone", lessonPaidColor},
		{"Częściowo", lessonPartialColor},
		{"Nieopłacone", lessonUnpaidColor},
		{"Brak uczniów", lessonEmptyColor},
	}

	boxW := 20.0
	boxH := 14.0
	liX := float64(leftLabelsWidth + daysInWeek*dayWidth + 10)
	liY := float64(imageHeight) - 130.0

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, FontStyleDefault)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
