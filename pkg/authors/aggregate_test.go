package authors

import (
	"reflect"
	"testing"
)

func scenarioRecords() []PackageRecord {
	return []PackageRecord{
		{Name: "root", Authors: []string{"Alice"}},
		{Name: "dep1", Authors: []string{"Alice", "Bob"}},
		{Name: "dep2"},
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		records    []PackageRecord
		ignoreSelf bool
		want       Mapping
	}{
		{
			name:       "ignore self",
			records:    scenarioRecords(),
			ignoreSelf: true,
			want: Mapping{
				"Alice": {"dep1": {}},
				"Bob":   {"dep1": {}},
			},
		},
		{
			name:    "include self",
			records: scenarioRecords(),
			want: Mapping{
				"Alice": {"root": {}, "dep1": {}},
				"Bob":   {"dep1": {}},
			},
		},
		{
			name: "duplicate records",
			records: []PackageRecord{
				{Name: "dep1", Authors: []string{"Alice", "Alice"}},
				{Name: "dep1", Authors: []string{"Alice"}},
			},
			want: Mapping{"Alice": {"dep1": {}}},
		},
		{
			name:    "no records",
			records: nil,
			want:    Mapping{},
		},
		{
			name:    "only authorless",
			records: []PackageRecord{{Name: "a"}, {Name: "b", Authors: []string{}}},
			want:    Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.records, "root", NewNormalizer(Options{}), tt.ignoreSelf)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aggregate = %v, want %v", got, tt.want)
			}
			for k, set := range got {
				if len(set) == 0 {
					t.Errorf("key %q has an empty set", k)
				}
			}
		})
	}
}

func TestAggregateSelfExclusionBeforeAnonymization(t *testing.T) {
	n := NewNormalizer(Options{HideCrates: true})
	got := Aggregate(scenarioRecords(), "root", n, true)

	want := Mapping{
		"Alice": {Digest("dep1"): {}},
		"Bob":   {Digest("dep1"): {}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate = %v, want %v", got, want)
	}
	for _, e := range got.Edges() {
		if e.To == Digest("root") || e.To == "root" {
			t.Errorf("root package leaked through edge %v", e)
		}
	}
}

func TestAggregateHideAuthorsAndCrates(t *testing.T) {
	n := NewNormalizer(Options{HideAuthors: true, HideCrates: true})
	got := Aggregate(scenarioRecords(), "root", n, true)

	want := Mapping{
		Digest("Alice"): {Digest("dep1"): {}},
		Digest("Bob"):   {Digest("dep1"): {}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate = %v, want %v", got, want)
	}
}
