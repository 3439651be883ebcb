// Package menu implements the in-game pause menu: named panels of items and
// the controller that ties them to the navigation stack and the game's
// pause state.
package menu

// ItemKind says what activating an item does.
type ItemKind int

const (
	// ItemResume resumes the game.
	ItemResume ItemKind = iota
	// ItemOpen opens the panel named by Target.
	ItemOpen
	// ItemBack closes the current panel.
	ItemBack
	// ItemSetting is adjusted left and right rather than activated.
	ItemSetting
	// ItemInfo is a read-only row; the cursor skips it.
	ItemInfo
	// ItemQuit exits the game.
	ItemQuit
)

func (k ItemKind) String() string {
	switch k {
	case ItemResume:
		return "resume"
	case ItemOpen:
		return "open"
	case ItemBack:
		return "back"
	case ItemSetting:
		return "setting"
	case ItemInfo:
		return "info"
	case ItemQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Item is one row of a panel. Label and Detail are message ids.
type Item struct {
	Label   string
	Kind    ItemKind
	Target  string // panel name, for ItemOpen
	Setting string // preference key, for ItemSetting
	Detail  string
}

func (i Item) selectable() bool {
	return i.Kind != ItemInfo
}

// Panel is a menu screen. It satisfies nav.Screen.
type Panel struct {
	name    string
	title   string
	items   []Item
	cursor  int
	visible bool
}

// NewPanel builds a panel with the cursor on its first selectable item.
func NewPanel(name, title string, items ...Item) *Panel {
	p := &Panel{name: name, title: title, items: items}
	p.cursor = p.firstSelectable()
	return p
}

func (p *Panel) Name() string  { return p.name }
func (p *Panel) Title() string { return p.title }
func (p *Panel) Visible() bool { return p.visible }
func (p *Panel) Show()         { p.visible = true }
func (p *Panel) Hide()         { p.visible = false }
func (p *Panel) Cursor() int   { return p.cursor }

// Items returns a copy of the rows.
func (p *Panel) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Selected returns the item under the cursor.
func (p *Panel) Selected() (Item, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return Item{}, false
	}
	return p.items[p.cursor], true
}

// MoveCursor steps over selectable items, wrapping at both ends.
func (p *Panel) MoveCursor(delta int) {
	n := len(p.items)
	if n == 0 || delta == 0 || p.cursor < 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for ; delta > 0; delta-- {
		for i := 1; i <= n; i++ {
			next := ((p.cursor+step*i)%n + n) % n
			if p.items[next].selectable() {
				p.cursor = next
				break
			}
		}
	}
}

func (p *Panel) firstSelectable() int {
	for i, it := range p.items {
		if it.selectable() {
			return i
		}
	}
	return -1
}
