package listing

import (
	"reflect"
	"testing"
)

type template struct {
	Name     string
	Language string
}

func templates() []template {
	return []template{
		{"welcome", "fr"},
		{"welcome", "en"},
		{"booking_confirmation", "fr"},
		{"booking_confirmation", "en"},
		{"password_reset", "fr"},
	}
}

func matchName(t template, term string) bool {
	return ContainsFold(term, t.Name)
}

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		in   Query
		want Query
	}{
		{Query{}, Query{Page: 1, Limit: DefaultLimit}},
		{Query{Page: -3, Limit: 500}, Query{Page: 1, Limit: MaxLimit}},
		{Query{Page: 2, Limit: 10, Search: "  x "}, Query{Page: 2, Limit: 10, Search: "x"}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	if off := (Query{Page: 3, Limit: 10}).Offset(); off != 20 {
		t.Errorf("Offset() = %d, want 20", off)
	}
}

func TestApply_SearchAndFilter(t *testing.T) {
	page := Apply(templates(), Query{Search: "BOOKING"}, matchName,
		Equals("fr", func(t template) string { return t.Language }))

	want := []template{{"booking_confirmation", "fr"}}
	if !reflect.DeepEqual(page.Items, want) {
		t.Errorf("Items = %v, want %v", page.Items, want)
	}
	if page.Total != 1 || page.TotalPages != 1 {
		t.Errorf("totals = %d/%d, want 1/1", page.Total, page.TotalPages)
	}
}

func TestApply_AllFilterKeepsEverything(t *testing.T) {
	page := Apply(templates(), Query{}, matchName, Equals("all", func(t template) string { return t.Language }))
	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
}

func TestApply_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		q         Query
		wantLen   int
		wantPages int
	}{
		{"first page", Query{Page: 1, Limit: 2}, 2, 3},
		{"last partial page", Query{Page: 3, Limit: 2}, 1, 3},
		{"past the end", Query{Page: 9, Limit: 2}, 0, 3},
		{"single page", Query{Page: 1, Limit: 50}, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(templates(), tt.q, nil)
			if len(page.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(page.Items), tt.wantLen)
			}
			if page.Items == nil {
				t.Error("Items must never be nil")
			}
			if page.Total != 5 || page.TotalPages != tt.wantPages {
				t.Errorf("totals = %d/%d, want 5/%d", page.Total, page.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{
		{0, 20}:  0,
		{1, 20}:  1,
		{20, 20}: 1,
		{21, 20}: 2,
		{5, 0}:   0,
	}
	for in, want := range cases {
		if got := TotalPages(in[0], in[1]); got != want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}
