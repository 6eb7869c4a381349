package menu

// Item is one static navigation entry. The listing is defined at
// process start and never mutated.
type Item struct {
	ID       string `json:"id"`
	MenuItem string `json:"menu_item"`
	Href     string `json:"href"`
}

// Items returns the full menu listing.
func Items() []Item {
	return []Item{
		{ID: "1", MenuItem: "Address", Href: "/"},
		{ID: "2", MenuItem: "Student", Href: "/students"},
		{ID: "3", MenuItem: "Login", Href: "/login"},
		{ID: "4", MenuItem: "Tutor", Href: "/tutor"},
		{ID: "5", MenuItem: "Pricing", Href: "/price_list"},
		{ID: "6", MenuItem: "Sign-up", Href: "/signup"},
		{ID: "7", MenuItem: "Contact", Href: "/contact"},
		{ID: "8", MenuItem: "Help", Href: "/help"},
		{ID: "9", MenuItem: "About", Href: "/about"},
	}
}
