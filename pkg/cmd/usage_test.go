package cmd

import "testing"

func TestTrimUsage(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "empty", doc: "", want: ""},
		{name: "blank", doc: "   \n  \n", want: ""},
		{name: "single line", doc: "  Flips a coin.  ", want: "Flips a coin."},
		{
			name: "indented block",
			doc: `
        Rolls a dice of the size you provide.
        ` + "`!highroller roll <number>`" + `
        **Example:** ` + "`!highroller roll 20`" + `
        `,
			want: "Rolls a dice of the size you provide.\n`!highroller roll <number>`\n**Example:** `!highroller roll 20`",
		},
		{
			name: "first line kept, rest dedented",
			doc:  "Usage:\n    !roll <n>\n      nested\n",
			want: "Usage:\n!roll <n>\n  nested",
		},
		{
			name: "tabs expanded",
			doc:  "Head\n\tone\n\t  two",
			want: "Head\none\n  two",
		},
		{
			name: "inner blank lines kept",
			doc:  "Head\n  a\n\n  b",
			want: "Head\na\n\nb",
		},
		{
			name: "crlf",
			doc:  "Head\r\n  a\r\n  b\r\n",
			want: "Head\na\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimUsage(tt.doc); got != tt.want {
				t.Errorf("TrimUsage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrimUsage_Idempotent(t *testing.T) {
	docs := []string{
		"Flips a coin.",
		"\n    Rolls a dice.\n    `!hr roll <number>`\n    ",
		"Usage:\n    !roll <n>\n      nested\n",
		"Head\n\tone\n\t  two",
	}

	for _, doc := range docs {
		once := TrimUsage(doc)
		if twice := TrimUsage(once); twice != once {
			t.Errorf("TrimUsage not idempotent for %q: %q then %q", doc, once, twice)
		}
	}
}
