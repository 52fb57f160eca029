package bank

import (
	"errors"
	"slices"
	"sort"
	"testing"
)

func TestCatalogQuestionsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Questions() {
		if err := Validate(q); err != nil {
			t.Errorf("Validate(%s): %v", q.ID, err)
		}
		if seen[q.ID] {
			t.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestCatalogVocabReferencesResolve(t *testing.T) {
	idx := VocabIndex(Vocabulary())
	for _, q := range Questions() {
		for _, id := range q.VocabIDs {
			if _, ok := idx[id]; !ok {
				t.Errorf("question %s references unknown vocab %q", q.ID, id)
			}
		}
	}
}

func TestValidateRejectsBrokenContent(t *testing.T) {
	tests := []struct {
		name string
		q    Question
	}{
		{"empty correct keys", Question{ID: "x", Type: TypeMultipleChoice, Choices: []string{"a", "b"}}},
		{"key not a choice", Question{ID: "x", Type: TypeCloze, Choices: []string{"a", "b"}, CorrectKeys: []string{"c"}}},
		{"ordering multiset mismatch", Question{ID: "x", Type: TypeOrdering, Tokens: []string{"a", "b"}, CorrectKeys: []string{"a", "a"}}},
		{"ordering without tokens", Question{ID: "x", Type: TypeOrdering, CorrectKeys: []string{"a"}}},
		{"choice type without choices", Question{ID: "x", Type: TypeTrueFalse, CorrectKeys: []string{"Benar"}}},
		{"unknown type", Question{ID: "x", Type: "essay", Choices: []string{"a"}, CorrectKeys: []string{"a"}}},
		{"bad kana set", Question{ID: "x", Type: TypeKana, Choices: []string{"a"}, CorrectKeys: []string{"a"}, KanaSet: "kanji"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.q)
			if err == nil {
				t.Fatal("expected error")
			}
			var ce *ContentError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ContentError, got %T", err)
			}
			if ce.QuestionID != "x" {
				t.Errorf("QuestionID = %q, want x", ce.QuestionID)
			}
		})
	}
}

func TestValidateKeysCaseInsensitive(t *testing.T) {
	q := Question{ID: "x", Type: TypeKana, Choices: []string{"SA", "shi"}, CorrectKeys: []string{"sa"}}
	if err := Validate(q); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    QuestionType
		wantErr bool
	}{
		{"", "", false},
		{"mixed", "", false},
		{"ORDERING", TypeOrdering, false},
		{" tf ", TypeTrueFalse, false},
		{"essay", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a := Shuffle(NewSeededRand(42), in)
	b := Shuffle(NewSeededRand(42), in)
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}

	sorted := slices.Clone(a)
	sort.Ints(sorted)
	if !slices.Equal(sorted, in) {
		t.Errorf("shuffle is not a permutation: %v", a)
	}
	if !slices.Equal(in, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Error("shuffle mutated its input")
	}
}

// fixedRand always picks the last candidate, which leaves order unchanged.
type fixedRand struct{}

func (fixedRand) IntN(n int) int { return n - 1 }

func TestGetQuestions(t *testing.T) {
	qs := []Question{
		{ID: "a", Type: TypeCloze, Choices: []string{"1", "2"}, CorrectKeys: []string{"1"}},
		{ID: "b", Type: TypeOrdering, Tokens: []string{"x", "y"}, CorrectKeys: []string{"x", "y"}},
		{ID: "c", Type: TypeCloze, Choices: []string{"1", "2"}, CorrectKeys: []string{"2"}},
		{ID: "d", Type: TypeKana, Choices: []string{"sa", "ki"}, CorrectKeys: []string{"sa"}},
	}
	a := NewAccessor(qs, fixedRand{})

	t.Run("truncates to count", func(t *testing.T) {
		got := a.GetQuestions(2, "", nil)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("type filter", func(t *testing.T) {
		got := a.GetQuestions(10, TypeCloze, nil)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		for _, q := range got {
			if q.Type != TypeCloze {
				t.Errorf("got type %q", q.Type)
			}
		}
	})

	t.Run("exclusions", func(t *testing.T) {
		got := a.GetQuestions(10, TypeCloze, []string{"a"})
		if len(got) != 1 || got[0].ID != "c" {
			t.Fatalf("got %+v, want only c", got)
		}
	})

	t.Run("zero count", func(t *testing.T) {
		if got := a.GetQuestions(0, "", nil); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestGetQuestionsDoesNotMutateCatalog(t *testing.T) {
	a := Default(NewSeededRand(7))
	for range 5 {
		a.GetQuestions(25, "", nil)
	}
	orig, ok := a.Lookup("ordering-001")
	if !ok {
		t.Fatal("ordering-001 missing")
	}
	if !slices.Equal(orig.Tokens, []string{"がっこうへ", "わたしは", "いきます"}) {
		t.Errorf("catalog tokens mutated: %v", orig.Tokens)
	}
}

func TestGetQuestionsReproducible(t *testing.T) {
	ids := func(qs []Question) []string {
		out := make([]string, len(qs))
		for i, q := range qs {
			out[i] = q.ID
		}
		return out
	}
	a := Default(NewSeededRand(99)).GetQuestions(10, "", nil)
	b := Default(NewSeededRand(99)).GetQuestions(10, "", nil)
	if !slices.Equal(ids(a), ids(b)) {
		t.Errorf("same seed gave different selections: %v vs %v", ids(a), ids(b))
	}
	for i := range a {
		if !slices.Equal(a[i].Choices, b[i].Choices) {
			t.Errorf("choices differ for %s", a[i].ID)
		}
	}
}

func TestFilterVocab(t *testing.T) {
	list := Vocabulary()

	tests := []struct {
		name      string
		filter    VocabFilter
		favorites []string
		wantIDs   []string
	}{
		{"theme", VocabFilter{Theme: "Keluarga"}, nil, []string{"v006", "v007", "v008", "v009", "v010", "v022"}},
		{"romaji case-insensitive", VocabFilter{Query: "GAKKOU"}, nil, []string{"v001"}},
		{"meaning", VocabFilter{Query: "perpustakaan"}, nil, []string{"v021"}},
		{"kana substring", VocabFilter{Query: "のむ"}, nil, []string{"v014"}},
		{"kanji substring", VocabFilter{Query: "図書"}, nil, []string{"v021"}},
		{"favorites only", VocabFilter{FavoritesOnly: true}, []string{"v003", "v020"}, []string{"v003", "v020"}},
		{"favorites with theme", VocabFilter{FavoritesOnly: true, Theme: "Tempat"}, []string{"v003", "v020"}, []string{"v020"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVocab(list, tt.filter, tt.favorites)
			var ids []string
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			if !slices.Equal(ids, tt.wantIDs) {
				t.Errorf("got %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}
