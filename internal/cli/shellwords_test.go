package cli

import "testing"

func TestSplitShellWords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{``, nil},
		{`   `, nil},
		{`add_category Home`, []string{"add_category", "Home"}},
		{`add_category "Mass Times" About`, []string{"add_category", "Mass Times", "About"}},
		{`add_category 'Youth Ministry'`, []string{"add_category", "Youth Ministry"}},
		{`rename "it's fine"`, []string{"rename", "it's fine"}},
		{`a\ b c`, []string{"a b", "c"}},
		{`mixed "a b"c`, []string{"mixed", "a bc"}},
	}

	for _, tc := range cases {
		got := splitShellWords(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("split(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("split(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
