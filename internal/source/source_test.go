package source

import "testing"

func TestSpecialized(t *testing.T) {
	general := []string{NameWikipedia, NameDuckDuckGo, NameFactCheck, NameWikidata}
	for _, name := range general {
		if Specialized(name) {
			t.Errorf("Specialized(%q) = true, want false", name)
		}
	}

	specialized := []string{NamePandaScore, NameESPN, NameSportsDB, NamePubMed, NameWHO, NameEDGAR, NameArxiv}
	for _, name := range specialized {
		if !Specialized(name) {
			t.Errorf("Specialized(%q) = false, want true", name)
		}
	}

	if Specialized("SomethingElse") {
		t.Error("Specialized should be false for unknown names")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("0123456789abc", 10); got != "0123456789" {
		t.Errorf("truncate = %q", got)
	}
}

func TestFilingURL(t *testing.T) {
	t.Run("archive link from hit id", func(t *testing.T) {
		got := filingURL("0000320193-24-000123:aapl-20240928.htm", "0000320193", "apple revenue")
		want := "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm"
		if got != want {
			t.Errorf("filingURL = %q, want %q", got, want)
		}
	})

	t.Run("falls back to search ui", func(t *testing.T) {
		got := filingURL("malformed", "", "apple revenue")
		want := "https://www.sec.gov/edgar/search/#/q=apple+revenue"
		if got != want {
			t.Errorf("filingURL = %q, want %q", got, want)
		}
	})
}
