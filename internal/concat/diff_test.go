package concat

import "testing"

func TestTrimCommon(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		prefix   int
		oldEnd   int
		newEnd   int
	}{
		{"identical", "abc", "abc", 3, 3, 3},
		{"both empty", "", "", 0, 0, 0},
		{"pure insert", "ab", "aXb", 1, 1, 2},
		{"pure delete", "aXb", "ab", 1, 2, 1},
		{"replace middle", "aXc", "aYc", 1, 2, 2},
		{"append", "ab", "abc", 2, 2, 3},
		{"prepend", "bc", "abc", 0, 0, 1},
		{"truncate", "abc", "ab", 2, 3, 2},
		{"disjoint", "abc", "xyz", 0, 3, 3},
		{"repeated run insert", "aaa", "aaaa", 3, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, oldEnd, newEnd := trimCommon(tt.old, tt.new)
			if prefix != tt.prefix || oldEnd != tt.oldEnd || newEnd != tt.newEnd {
				t.Errorf("trimCommon(%q, %q) = (%d, %d, %d), expected (%d, %d, %d)",
					tt.old, tt.new, prefix, oldEnd, newEnd, tt.prefix, tt.oldEnd, tt.newEnd)
			}
		})
	}
}

func TestTrimCommon_WindowReplacement(t *testing.T) {
	tests := []struct {
		old, new string
	}{
		{"print(1)\n", "print(12)\n"},
		{"x = 1\ny = 2\n", "x = 1\n"},
		{"", "import os\n"},
		{"aaaa", "aa"},
	}

	for _, tt := range tests {
		prefix, oldEnd, newEnd := trimCommon(tt.old, tt.new)
		rebuilt := tt.old[:prefix] + tt.new[prefix:newEnd] + tt.old[oldEnd:]
		if rebuilt != tt.new {
			t.Errorf("Window from trimCommon(%q, %q) rebuilds %q", tt.old, tt.new, rebuilt)
		}
	}
}
