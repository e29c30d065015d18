package pagination

import (
	"net/url"
	"testing"
)

func TestNormalizeClampsValues(t *testing.T) {
	p := Params{Page: 0, PerPage: 0}.Normalize()
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Fatalf("expected default per page, got %d", p.PerPage)
	}

	p = Params{Page: 3, PerPage: 1000}.Normalize()
	if p.PerPage != MaxPerPage {
		t.Fatalf("expected per page capped at %d, got %d", MaxPerPage, p.PerPage)
	}
}

func TestOffsetIsOneIndexed(t *testing.T) {
	if got := (Params{Page: 1, PerPage: 12}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for first page, got %d", got)
	}
	if got := (Params{Page: 3, PerPage: 12}).Offset(); got != 24 {
		t.Fatalf("expected offset 24 for third page, got %d", got)
	}
}

func TestLastPage(t *testing.T) {
	if got := LastPage(0, 12); got != 1 {
		t.Fatalf("expected empty listing to report one page, got %d", got)
	}
	if got := LastPage(12, 12); got != 1 {
		t.Fatalf("expected exactly one page, got %d", got)
	}
	if got := LastPage(13, 12); got != 2 {
		t.Fatalf("expected two pages, got %d", got)
	}
}

func TestBuildMetaLinks(t *testing.T) {
	query := url.Values{"search": {"pen"}}
	meta := BuildMeta(25, Params{Page: 2, PerPage: 12}, "/api/products", query)

	if meta.CurrentPage != 2 || meta.LastPage != 3 || meta.Total != 25 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	// previous + 3 pages + next
	if len(meta.Links) != 5 {
		t.Fatalf("expected 5 links, got %d", len(meta.Links))
	}
	if meta.Links[0].URL == nil {
		t.Fatal("expected previous link on page 2")
	}
	if !meta.Links[2].Active {
		t.Fatalf("expected page 2 link active, got %+v", meta.Links[2])
	}
	if meta.Links[4].URL == nil {
		t.Fatal("expected next link on page 2 of 3")
	}
	next := *meta.Links[4].URL
	if next != "/api/products?page=3&search=pen" {
		t.Fatalf("unexpected next link %q", next)
	}
}

func TestBuildMetaPastLastPageClamps(t *testing.T) {
	meta := BuildMeta(5, Params{Page: 9, PerPage: 12}, "/api/products", nil)
	if meta.CurrentPage != 1 || meta.LastPage != 1 {
		t.Fatalf("expected clamp to single page, got %+v", meta)
	}
	if meta.Links[0].URL != nil {
		t.Fatal("expected no previous link on the only page")
	}
	if meta.Links[len(meta.Links)-1].URL != nil {
		t.Fatal("expected no next link on the only page")
	}
}
