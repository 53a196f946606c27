package cli

// menuOption is one selectable entry of a menu.
type menuOption struct {
	key   string
	label string
}

// menu is a static menu definition. Menus are constant configuration
// passed into the CLI rather than mutable globals.
type menu struct {
	title   string
	options []menuOption
}

var mainMenu = menu{
	title: "🎬 ReelTracker Menu",
	options: []menuOption{
		{"1", "Search and add new title"},
		{"2", "Manage watchlist titles"},
		{"3", "Manage watched titles"},
		{"4", "Get recommendations"},
		{"5", "See what's trending"},
		{"6", "Back up your list"},
		{"e", "Exit"},
	},
}

var selectMenu = menu{
	title: "Options:",
	options: []menuOption{
		{"<number>", "Select a title to save"},
		{"m", "Return to main menu"},
	},
}

var watchlistMenu = menu{
	title: "Manage Watchlist:",
	options: []menuOption{
		{"w <number>", "Mark as watched and rate"},
		{"d <number>", "Delete title"},
		{"m", "Return to main menu"},
	},
}

var watchedMenu = menu{
	title: "Manage Watched Titles:",
	options: []menuOption{
		{"r <number>", "Change rating"},
		{"w <number>", "Move back to watchlist"},
		{"d <number>", "Delete title"},
		{"m", "Return to main menu"},
	},
}
