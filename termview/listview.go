// Package termview provides a reference terminal host for a fastadapter
// composer: a list view that renders the composed global index space onto a
// tcell screen and feeds clicks and key presses back into the composer's
// event dispatch.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/mikepenz/fastadapter"
)

// Renderer returns the single line of text representing an item. The width
// is the usable text width; the view clips and pads as needed.
type Renderer func(item fastadapter.Item, position int, width int) string

// DefaultRenderer prints an expansion indicator, a selection marker and the
// item's identifier. Applications normally set their own renderer.
func DefaultRenderer(item fastadapter.Item, position int, width int) string {
	indicator := "  "
	if expandable, ok := fastadapter.AsExpandable(item); ok && len(expandable.SubItems()) > 0 {
		if expandable.IsExpanded() {
			indicator = "- "
		} else {
			indicator = "+ "
		}
	}
	marker := "  "
	if item.IsSelected() {
		marker = "* "
	}
	return fmt.Sprintf("%s%sitem %d", indicator, marker, item.Identifier())
}

type listRect struct {
	x      int
	y      int
	width  int
	height int
}

// ListView displays the items of a composer, one row per global position.
// It implements the composer's notification sink: every structural change
// marks the view dirty and keeps the cursor and scroll state in range.
type ListView struct {
	composer *fastadapter.Composer
	renderer Renderer

	cursor int
	top    int

	style         tcell.Style
	cursorStyle   tcell.Style
	selectedStyle tcell.Style
	thumbStyle    tcell.Style

	changed func(position int)

	dirty    bool
	lastRect listRect
}

// NewListView returns a list view bound to the composer. The view registers
// itself as the composer's notifier.
func NewListView(composer *fastadapter.Composer) *ListView {
	v := &ListView{
		composer:      composer,
		renderer:      DefaultRenderer,
		cursor:        -1,
		style:         tcell.StyleDefault,
		cursorStyle:   tcell.StyleDefault.Reverse(true),
		selectedStyle: tcell.StyleDefault.Bold(true),
		thumbStyle:    tcell.StyleDefault.Reverse(true),
		dirty:         true,
	}
	composer.SetNotifier(v)
	return v
}

// SetRenderer sets the function rendering each item row.
func (v *ListView) SetRenderer(renderer Renderer) *ListView {
	if renderer != nil {
		v.renderer = renderer
		v.MarkDirty()
	}
	return v
}

// SetStyles sets the base, cursor and selected row styles.
func (v *ListView) SetStyles(style, cursorStyle, selectedStyle tcell.Style) *ListView {
	v.style = style
	v.cursorStyle = cursorStyle
	v.selectedStyle = selectedStyle
	v.MarkDirty()
	return v
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (v *ListView) SetChangedFunc(handler func(position int)) *ListView {
	v.changed = handler
	return v
}

// Cursor returns the current cursor position, or -1.
func (v *ListView) Cursor() int {
	return v.cursor
}

// SetCursor moves the cursor to the given global position, clamped into
// range.
func (v *ListView) SetCursor(position int) *ListView {
	count := v.composer.ItemCount()
	if position >= count {
		position = count - 1
	}
	if position < -1 {
		position = -1
	}
	if v.cursor != position {
		v.cursor = position
		v.MarkDirty()
		if v.changed != nil {
			v.changed(v.cursor)
		}
	}
	return v
}

// IsDirty returns whether the view needs redrawing.
func (v *ListView) IsDirty() bool {
	return v.dirty
}

// MarkDirty marks the view as needing a redraw.
func (v *ListView) MarkDirty() {
	v.dirty = true
}

// MarkClean marks the view as clean. Draw does this itself.
func (v *ListView) MarkClean() {
	v.dirty = false
}

// Draw renders the view into the given rectangle of the screen. The
// rightmost column is reserved for the scroll thumb when the list overflows
// the viewport.
func (v *ListView) Draw(screen tcell.Screen, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.lastRect = listRect{x: x, y: y, width: width, height: height}

	count := v.composer.ItemCount()
	v.clampScroll(count, height)

	textWidth := width
	hasThumb := count > height
	if hasThumb {
		textWidth--
	}

	for row := 0; row < height; row++ {
		position := v.top + row
		style := v.style
		text := ""
		if position < count {
			item := v.composer.Item(position)
			if item == nil {
				break
			}
			if item.IsSelected() {
				style = v.selectedStyle
			}
			if position == v.cursor {
				style = v.cursorStyle
			}
			text = v.renderer(item, position, textWidth)
		}
		putLine(screen, x, y+row, textWidth, text, style)
	}

	if hasThumb {
		v.drawThumb(screen, x+width-1, y, height, count)
	}
	v.dirty = false
}

// drawThumb draws a proportional scroll indicator in a single column.
func (v *ListView) drawThumb(screen tcell.Screen, x, y, height, count int) {
	thumbHeight := height * height / count
	if thumbHeight < 1 {
		thumbHeight = 1
	}
	maxTop := count - height
	thumbTop := 0
	if maxTop > 0 {
		thumbTop = v.top * (height - thumbHeight) / maxTop
	}
	for row := 0; row < height; row++ {
		style := v.style
		ch := '│'
		if row >= thumbTop && row < thumbTop+thumbHeight {
			style = v.thumbStyle
			ch = '█'
		}
		screen.SetContent(x, y+row, ch, nil, style)
	}
}

// clampScroll keeps the cursor visible and the viewport within the list.
func (v *ListView) clampScroll(count, height int) {
	if v.cursor >= count {
		v.cursor = count - 1
	}
	if v.cursor >= 0 {
		if v.cursor < v.top {
			v.top = v.cursor
		}
		if v.cursor >= v.top+height {
			v.top = v.cursor - height + 1
		}
	}
	if v.top > count-height {
		v.top = count - height
	}
	if v.top < 0 {
		v.top = 0
	}
}

// HandleKey processes a key event: arrows and paging move the cursor, enter
// clicks the cursor item, space long-clicks it. Returns whether the event
// was handled.
func (v *ListView) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyUp:
		v.moveCursor(-1)
		return true
	case tcell.KeyDown:
		v.moveCursor(1)
		return true
	case tcell.KeyPgUp:
		v.moveCursor(-v.pageSize())
		return true
	case tcell.KeyPgDn:
		v.moveCursor(v.pageSize())
		return true
	case tcell.KeyHome:
		v.SetCursor(0)
		return true
	case tcell.KeyEnd:
		v.SetCursor(v.composer.ItemCount() - 1)
		return true
	case tcell.KeyEnter:
		if v.cursor >= 0 {
			v.composer.Click(v.cursor)
			v.MarkDirty()
			return true
		}
	case tcell.KeyRune:
		if event.Rune() == ' ' && v.cursor >= 0 {
			v.composer.LongClick(v.cursor)
			v.MarkDirty()
			return true
		}
	}
	return false
}

// HandleMouse processes a mouse event: a left click moves the cursor to the
// hit row and dispatches a composer click there; the wheel scrolls the
// viewport. Returns whether the event was handled.
func (v *ListView) HandleMouse(event *tcell.EventMouse) bool {
	x, y := event.Position()
	switch {
	case event.Buttons()&tcell.Button1 != 0:
		position := v.positionAtPoint(x, y)
		if position < 0 {
			return false
		}
		v.SetCursor(position)
		v.composer.Click(position)
		v.MarkDirty()
		return true
	case event.Buttons()&tcell.WheelUp != 0:
		v.scrollBy(-3)
		return true
	case event.Buttons()&tcell.WheelDown != 0:
		v.scrollBy(3)
		return true
	}
	return false
}

// positionAtPoint maps screen coordinates to a global position using the
// rectangle of the last draw. Returns -1 when the point misses an item row.
func (v *ListView) positionAtPoint(x, y int) int {
	r := v.lastRect
	if x < r.x || x >= r.x+r.width || y < r.y || y >= r.y+r.height {
		return -1
	}
	position := v.top + y - r.y
	if position >= v.composer.ItemCount() {
		return -1
	}
	return position
}

func (v *ListView) moveCursor(delta int) {
	count := v.composer.ItemCount()
	if count == 0 {
		return
	}
	position := v.cursor + delta
	if position < 0 {
		position = 0
	}
	if position >= count {
		position = count - 1
	}
	v.SetCursor(position)
}

func (v *ListView) pageSize() int {
	if v.lastRect.height > 1 {
		return v.lastRect.height
	}
	return 1
}

func (v *ListView) scrollBy(lines int) {
	v.top += lines
	v.MarkDirty()
}

// ItemsInserted implements the composer's notification sink.
func (v *ListView) ItemsInserted(position, count int) {
	if v.cursor >= position {
		v.cursor += count
	}
	v.MarkDirty()
}

// ItemsRemoved implements the composer's notification sink.
func (v *ListView) ItemsRemoved(position, count int) {
	if v.cursor >= position+count {
		v.cursor -= count
	} else if v.cursor >= position {
		v.cursor = position
	}
	if v.cursor >= v.composer.ItemCount() {
		v.cursor = v.composer.ItemCount() - 1
	}
	v.MarkDirty()
}

// ItemMoved implements the composer's notification sink.
func (v *ListView) ItemMoved(fromPosition, toPosition int) {
	switch {
	case v.cursor == fromPosition:
		v.cursor = toPosition
	case fromPosition < v.cursor && toPosition >= v.cursor:
		v.cursor--
	case fromPosition > v.cursor && toPosition <= v.cursor:
		v.cursor++
	}
	v.MarkDirty()
}

// ItemsChanged implements the composer's notification sink.
func (v *ListView) ItemsChanged(position, count int, payload any) {
	v.MarkDirty()
}

// DataSetChanged implements the composer's notification sink.
func (v *ListView) DataSetChanged() {
	if v.cursor >= v.composer.ItemCount() {
		v.cursor = v.composer.ItemCount() - 1
	}
	v.MarkDirty()
}

// putLine writes text into a single row, clipping grapheme-aware at the
// given width and padding the remainder with spaces.
func putLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && col < width {
		cluster := gr.Str()
		clusterWidth := uniseg.StringWidth(cluster)
		if clusterWidth < 1 {
			clusterWidth = 1
		}
		if col+clusterWidth > width {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += clusterWidth
	}
	for ; col < width; col++ {
		screen.SetContent(x+col, y, ' ', nil, style)
	}
}

var _ fastadapter.Notifier = &ListView{}
