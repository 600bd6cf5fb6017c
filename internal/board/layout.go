package board

import (
	"math"
	"time"

	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/timegrid"
)

// Block is one positioned booking card. Top and Height are in real
// pixels, already rescaled from the 60-px-per-hour unit to the grid's row
// height. A Broken block had an unparseable time range; its geometry is
// zeroed so the view stays JSON-encodable, and the client renders it as
// visibly out of place rather than dropping it.
type Block struct {
	Key      string  `json:"key"`
	Time     string  `json:"time"`
	People   string  `json:"people,omitempty"`
	Extras   string  `json:"extras,omitempty"`
	Comment  string  `json:"comment,omitempty"`
	Status   string  `json:"status,omitempty"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
	InFlight bool    `json:"inFlight"`
	Broken   bool    `json:"broken,omitempty"`
}

// Column is one hall's lane on the board.
type Column struct {
	Hall   string  `json:"hall"`
	Label  string  `json:"label"`
	Blocks []Block `json:"blocks"`
}

// View is the fully laid-out board, ready to render.
type View struct {
	Slots        []string `json:"slots"`
	RowPx        int      `json:"rowPx"`
	GridHeightPx int      `json:"gridHeightPx"`
	NowOffsetPx  float64  `json:"nowOffsetPx"`
	TimeColPx    int      `json:"timeColPx"`
	ColWidthPx   int      `json:"colWidthPx"`
	VisibleCols  int      `json:"visibleCols"`
	Compact      bool     `json:"compact"`
	Columns      []Column `json:"columns"`
}

// Sizing is the responsive column policy for a given viewport width: aim
// for seven hall columns on a phone, and keep the time column narrow.
type Sizing struct {
	VisibleCols  int
	TimeColPx    int
	OuterPadding int
	ColWidthPx   int
	Compact      bool
}

// DefaultViewportWidth is assumed when the client does not report one.
const DefaultViewportWidth = 390

// minBlockPx keeps very short bookings tappable.
const minBlockPx = 22.0

// SizingFor computes the column policy for a viewport width.
func SizingFor(viewportWidth int) Sizing {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}

	s := Sizing{}
	var minCol, maxCol int
	switch {
	case viewportWidth < 520:
		s.VisibleCols, s.TimeColPx, s.OuterPadding = 7, 32, 6
		minCol, maxCol = 40, 150
	case viewportWidth < 900:
		s.VisibleCols, s.TimeColPx, s.OuterPadding = 10, 64, 16
		minCol, maxCol = 90, 150
	default:
		s.VisibleCols, s.TimeColPx, s.OuterPadding = 12, 80, 16
		minCol, maxCol = 90, 190
	}

	available := viewportWidth - s.OuterPadding*2 - s.TimeColPx
	s.ColWidthPx = clamp(available/s.VisibleCols, minCol, maxCol)
	s.Compact = s.ColWidthPx <= 60
	return s
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// compactLabels abbreviates the hall names that do not fit a narrow
// column header.
var compactLabels = map[string]string{
	"Циклорама А": "Цикл А",
	"Циклорама Б": "Цикл Б",
	"Мастерская":  "Мастер",
}

// HallLabel returns the column header text for a hall.
func HallLabel(hall string, compact bool) string {
	if !compact {
		return hall
	}
	if short, ok := compactLabels[hall]; ok {
		return short
	}
	return hall
}

// Layout composes the board view from the booking list, the status
// overlay, and the in-flight markers.
func Layout(
	bookings []booking.Booking,
	statuses map[string]string,
	inFlight func(key string) bool,
	halls []string,
	dayStart, dayEnd string,
	rowPx int,
	now time.Time,
	viewportWidth int,
) View {
	sizing := SizingFor(viewportWidth)
	slots := timegrid.Slots(dayStart, dayEnd)
	pxScale := float64(rowPx) / 60

	// An unparseable day start must not break encoding of the whole view;
	// the indicator just sits at the top.
	nowOffset := timegrid.NowPosition(dayStart, now) * pxScale
	if math.IsNaN(nowOffset) {
		nowOffset = 0
	}

	byHall := make(map[string][]booking.Booking, len(halls))
	for _, b := range bookings {
		byHall[b.Hall] = append(byHall[b.Hall], b)
	}

	columns := make([]Column, 0, len(halls))
	for _, hall := range halls {
		col := Column{
			Hall:   hall,
			Label:  HallLabel(hall, sizing.Compact),
			Blocks: make([]Block, 0, len(byHall[hall])),
		}
		for _, b := range byHall[hall] {
			col.Blocks = append(col.Blocks, layoutBlock(b, statuses, inFlight, dayStart, pxScale))
		}
		columns = append(columns, col)
	}

	return View{
		Slots:        slots,
		RowPx:        rowPx,
		GridHeightPx: len(slots) * rowPx,
		NowOffsetPx:  nowOffset,
		TimeColPx:    sizing.TimeColPx,
		ColWidthPx:   sizing.ColWidthPx,
		VisibleCols:  sizing.VisibleCols,
		Compact:      sizing.Compact,
		Columns:      columns,
	}
}

func layoutBlock(b booking.Booking, statuses map[string]string, inFlight func(string) bool, dayStart string, pxScale float64) Block {
	key := b.Key()
	block := Block{
		Key:      key,
		Time:     b.Time,
		People:   b.People,
		Extras:   b.Extras,
		Comment:  b.Comment,
		Status:   statuses[key],
		InFlight: inFlight(key),
	}

	pos := timegrid.BlockPosition(b.Time, dayStart)
	if math.IsNaN(pos.Top) || math.IsNaN(pos.Height) {
		block.Broken = true
		return block
	}

	block.Top = pos.Top * pxScale
	block.Height = math.Max(minBlockPx, (pos.Height-4)*pxScale)
	return block
}
