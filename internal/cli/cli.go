package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"reel-tracker/internal/models"
	"reel-tracker/internal/service"
	"reel-tracker/internal/tmdb"
)

// how many entries a listing shows at once
const displayLimit = 6

// CLI runs the interactive terminal menus over the tracker services.
type CLI struct {
	in          *bufio.Scanner
	out         io.Writer
	tmdbClient  *tmdb.Client
	library     *service.LibraryService
	recommender *service.Recommender
	catalog     *service.GenreCatalog
	backupSvc   *service.BackupService
}

// New creates a CLI bound to the given input/output streams.
func New(
	in io.Reader,
	out io.Writer,
	tmdbClient *tmdb.Client,
	library *service.LibraryService,
	recommender *service.Recommender,
	catalog *service.GenreCatalog,
	backupSvc *service.BackupService,
) *CLI {
	return &CLI{
		in:          bufio.NewScanner(in),
		out:         out,
		tmdbClient:  tmdbClient,
		library:     library,
		recommender: recommender,
		catalog:     catalog,
		backupSvc:   backupSvc,
	}
}

// Run loops on the main menu until the user exits or input ends.
func (c *CLI) Run() {
	for {
		c.showMenu(mainMenu)
		choice, ok := c.prompt("Choose an option: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.runSearch()
		case "2":
			c.runManageList(false)
		case "3":
			c.runManageList(true)
		case "4":
			c.runRecommendations()
		case "5":
			c.runTrending()
		case "6":
			c.runBackup()
		case "e":
			fmt.Fprintln(c.out, "\nGoodbye! 🎬")
			return
		default:
			fmt.Fprintln(c.out, "\n❌  Invalid choice, try again.")
		}
	}
}

// runSearch drives the search-and-save flow.
func (c *CLI) runSearch() {
	query, ok := c.prompt("\n🔎 Search for a title: ")
	if !ok || query == "" {
		return
	}

	results, err := c.tmdbClient.SearchMulti(query)
	if err != nil {
		fmt.Fprintln(c.out, "\n⚠️  Could not reach TMDB. Please try again later.")
		return
	}

	titles := service.PrepareTitles(results, "", c.catalog)
	if len(titles) == 0 {
		fmt.Fprintln(c.out, "\n❌  No results found. Try another search.")
		return
	}

	c.selectAndSave(titles)
}

// runTrending lists trending titles and offers to save one.
func (c *CLI) runTrending() {
	results, err := c.tmdbClient.Trending()
	if err != nil {
		fmt.Fprintln(c.out, "\n⚠️  Could not reach TMDB. Please try again later.")
		return
	}

	titles := service.PrepareTitles(results, "", c.catalog)
	if len(titles) == 0 {
		fmt.Fprintln(c.out, "\n❌  No trending titles found.")
		return
	}

	fmt.Fprintln(c.out, "\nTrending this week:")
	c.selectAndSave(titles)
}

// runRecommendations computes recommendations for the current list state.
func (c *CLI) runRecommendations() {
	state, err := c.recommender.BuildListState()
	if err != nil {
		fmt.Fprintf(c.out, "\n⚠️  Could not load your list: %v\n", err)
		return
	}

	titles, err := c.recommender.Recommend(state)
	if err != nil {
		fmt.Fprintf(c.out, "\n⚠️  Could not generate recommendations: %v\n", err)
		return
	}
	if len(titles) == 0 {
		fmt.Fprintln(c.out, "\n❌  No titles found. Returning to main menu...")
		return
	}

	fmt.Fprintln(c.out, "\nRecommended for you:")
	c.selectAndSave(titles)
}

// runManageList drives the watchlist/watched management menu.
func (c *CLI) runManageList(watched bool) {
	titles, err := c.library.List(watched)
	if err != nil {
		fmt.Fprintf(c.out, "\n⚠️  Could not load your list: %v\n", err)
		return
	}
	if len(titles) == 0 {
		if watched {
			fmt.Fprintln(c.out, "\n❌  No watched title found.")
		} else {
			fmt.Fprintln(c.out, "\n❌  Your watchlist is empty.")
		}
		return
	}

	c.displayTitles(titles, len(titles))
	if watched {
		c.showMenu(watchedMenu)
	} else {
		c.showMenu(watchlistMenu)
	}

	input, ok := c.prompt("Choose an action: ")
	if !ok || input == "m" {
		return
	}

	action, index, err := parseListCommand(input, len(titles))
	if err != nil {
		fmt.Fprintf(c.out, "\n❌  %v\n", err)
		return
	}
	title := titles[index]

	switch action {
	case "w":
		rating := 0
		if !title.Watched {
			rating = c.promptRating()
		}
		updated, err := c.library.ToggleWatched(title.ID, title.MediaType, rating)
		if err != nil {
			fmt.Fprintf(c.out, "\n⚠️  %v\n", err)
			return
		}
		if updated.Watched {
			fmt.Fprintf(c.out, "\n✅  '%s' marked as watched.\n", updated.Name)
		} else {
			fmt.Fprintf(c.out, "\n✅  '%s' moved back to your watchlist.\n", updated.Name)
		}
	case "r":
		rating := c.promptRating()
		if rating == 0 {
			return
		}
		if _, err := c.library.SetRating(title.ID, title.MediaType, rating); err != nil {
			fmt.Fprintf(c.out, "\n⚠️  %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "\n✅  '%s' rated %d/5.\n", title.Name, rating)
	case "d":
		if !c.confirm(fmt.Sprintf("\nDelete '%s' from your list? (y/n): ", title.Name)) {
			fmt.Fprintln(c.out, "\n❌  Deletion cancelled.")
			return
		}
		if err := c.library.Remove(title.ID, title.MediaType); err != nil {
			fmt.Fprintf(c.out, "\n⚠️  %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "\n✅  '%s' deleted.\n", title.Name)
	}
}

// runBackup copies the database file aside.
func (c *CLI) runBackup() {
	path, err := c.backupSvc.Backup()
	if err != nil {
		fmt.Fprintf(c.out, "\n⚠️  Backup failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "\n✅  Backup written to %s\n", path)
}

// selectAndSave displays titles and lets the user pick one to save.
func (c *CLI) selectAndSave(titles []models.Title) {
	shown := c.displayTitles(titles, displayLimit)
	c.showMenu(selectMenu)

	input, ok := c.prompt("Choose an option: ")
	if !ok || input == "m" {
		fmt.Fprintln(c.out, "\nReturning to main menu...")
		return
	}

	index, err := strconv.Atoi(input)
	if err != nil || index < 1 || index > shown {
		fmt.Fprintln(c.out, "\n❌  Invalid selection.")
		return
	}
	selected := titles[index-1]

	fmt.Fprintf(c.out, "\n📥  You've selected '%s' (%s)\n", selected.Name, selected.ReleaseYear)

	if c.confirm("\nHave you already watched it? (y/n): ") {
		if err := selected.ToggleWatched(c.promptRating()); err != nil {
			fmt.Fprintf(c.out, "\n⚠️  %v\n", err)
			return
		}
	}

	saved, added, err := c.library.Add(selected)
	if err != nil {
		fmt.Fprintf(c.out, "\n⚠️  Could not save title: %v\n", err)
		return
	}
	if !added {
		status := "watchlist"
		if saved.Watched {
			status = "watched"
		}
		fmt.Fprintf(c.out, "\n%s already in list, marked as %s.\n", saved.Name, status)
		return
	}
	fmt.Fprintf(c.out, "\n✅  '%s' successfully saved.\n", saved.Name)
}

// displayTitles prints a numbered listing and returns how many were shown.
func (c *CLI) displayTitles(titles []models.Title, limit int) int {
	shown := len(titles)
	if shown > limit {
		shown = limit
	}
	fmt.Fprintln(c.out)
	for i, title := range titles[:shown] {
		genres := strings.Join(title.Genres, ", ")
		if genres == "" {
			genres = "No genres"
		}
		fmt.Fprintf(c.out, "(%d) %s (%s) [%s] - %s\n",
			i+1, title.Name, title.ReleaseYear, title.MediaType, genres)
	}
	return shown
}

// promptRating asks for a 1-5 rating, 0 meaning skipped.
func (c *CLI) promptRating() int {
	for {
		input, ok := c.prompt("\nRate it 1-5 (or press enter to skip): ")
		if !ok || input == "" {
			return 0
		}
		rating, err := strconv.Atoi(input)
		if err != nil || rating < 1 || rating > 5 {
			fmt.Fprintln(c.out, "❌  Rating must be a number between 1 and 5.")
			continue
		}
		return rating
	}
}

func (c *CLI) confirm(question string) bool {
	answer, ok := c.prompt(question)
	return ok && strings.EqualFold(answer, "y")
}

func (c *CLI) prompt(question string) (string, bool) {
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *CLI) showMenu(m menu) {
	fmt.Fprintf(c.out, "\n%s\n", m.title)
	for _, opt := range m.options {
		fmt.Fprintf(c.out, "%s → %s\n", opt.key, opt.label)
	}
}

// parseListCommand parses a management command like "w 2" into an action
// and a zero-based index.
func parseListCommand(input string, count int) (string, int, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected a command like 'w 2'")
	}
	action := fields[0]
	if action != "w" && action != "r" && action != "d" {
		return "", 0, fmt.Errorf("unknown action %q", action)
	}
	index, err := strconv.Atoi(fields[1])
	if err != nil || index < 1 || index > count {
		return "", 0, fmt.Errorf("invalid title number %q", fields[1])
	}
	return action, index - 1, nil
}
