package credits

import (
	"html/template"
	"log"
	"net/http"
	"sort"

	"github.com/memoirly/memoirly-web/internal/chapters"
)

type Credit struct {
	ImagePath  string
	CreditHTML template.HTML
}

// Handler renders the attribution page for chapter pack illustrations.
func Handler(library *chapters.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		// Collect unique credits across every chapter pack, keyed by image path
		allCredits := make(map[string]Credit)
		for _, chapter := range library.List() {
			for _, credit := range chapter.Credits {
				allCredits[credit.ImagePath] = Credit{
					ImagePath:  credit.ImagePath,
					CreditHTML: template.HTML(credit.CreditHTML),
				}
			}
		}

		uniqueCredits := make([]Credit, 0, len(allCredits))
		for _, credit := range allCredits {
			uniqueCredits = append(uniqueCredits, credit)
		}

		// Sort alphabetically by image path for consistent ordering
		sort.Slice(uniqueCredits, func(i, j int) bool {
			return uniqueCredits[i].ImagePath < uniqueCredits[j].ImagePath
		})

		tmpl, err := template.ParseFiles("./web/templates/credits.gohtml")
		if err != nil {
			http.Error(w, "Failed to parse template", http.StatusInternalServerError)
			log.Printf("Error parsing template: %v", err)
			return
		}

		if err := tmpl.Execute(w, uniqueCredits); err != nil {
			http.Error(w, "Failed to execute template", http.StatusInternalServerError)
			log.Printf("Error executing template: %v", err)
		}
	}
}
