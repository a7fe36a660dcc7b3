package library

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnknownFolders(t *testing.T) {
	lib := &Library{
		Folders: []Folder{{ID: 1, Name: "Math"}},
		Members: map[int64][]int64{1: {10}, 9: {11}, 4: {10, 12}},
	}

	if diff := cmp.Diff([]int64{4, 9}, lib.UnknownFolders()); diff != "" {
		t.Errorf("UnknownFolders() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownFolders_AllKnown(t *testing.T) {
	lib := &Library{
		Folders: []Folder{{ID: 1, Name: "Math"}, {ID: 2, Name: "Art"}},
		Members: map[int64][]int64{1: {10}},
	}

	if got := lib.UnknownFolders(); len(got) != 0 {
		t.Errorf("UnknownFolders() = %v, want none", got)
	}
}
