package hunkctx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/hunkctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cargoManifest returns the 14-line file used by the scenarios below, split
// the same way a content provider would split it.
func cargoManifest() []string {
	content := `[package]
name = "gitbutler-core"
version = "0.0.0"
edition = "2021"

[features]
default = ["serde", "rusqlite"]
serde = ["dep:serde", "uuid/serde"]
rusqlite = ["dep:rusqlite"]

[dependencies]
rusqlite = { workspace = true, optional = true }
serde = { workspace = true, optional = true }
uuid = { workspace = true, features = ["v4", "fast-rng"] }
`
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hunk      string
		startLine int
		want      string
		wantOld   [2]uint32
		wantNew   [2]uint32
	}{
		{
			name: "replace line mid file",
			hunk: "@@ -8 +8 @@ default = [\"serde\", \"rusqlite\"]\n" +
				"-serde = [\"dep:serde\", \"uuid/serde\"]\n" +
				"+SERDE = [\"dep:serde\", \"uuid/serde\"]\n",
			startLine: 8,
			want: "@@ -5,7 +5,7 @@\n" +
				" \n" +
				" [features]\n" +
				" default = [\"serde\", \"rusqlite\"]\n" +
				"-serde = [\"dep:serde\", \"uuid/serde\"]\n" +
				"+SERDE = [\"dep:serde\", \"uuid/serde\"]\n" +
				" rusqlite = [\"dep:rusqlite\"]\n" +
				" \n" +
				" [dependencies]\n",
			wantOld: [2]uint32{5, 7},
			wantNew: [2]uint32{5, 7},
		},
		{
			name: "replace line top file",
			hunk: "@@ -2 +2 @@\n" +
				"-name = \"gitbutler-core\"\n" +
				"+NAME = \"gitbutler-core\"\n",
			startLine: 2,
			want: "@@ -1,5 +1,5 @@\n" +
				" [package]\n" +
				"-name = \"gitbutler-core\"\n" +
				"+NAME = \"gitbutler-core\"\n" +
				" version = \"0.0.0\"\n" +
				" edition = \"2021\"\n" +
				" \n",
			wantOld: [2]uint32{1, 5},
			wantNew: [2]uint32{1, 5},
		},
		{
			name: "replace line start file",
			hunk: "@@ -1 +1 @@\n" +
				"-[package]\n" +
				"+[PACKAGE]\n",
			startLine: 1,
			want: "@@ -1,4 +1,4 @@\n" +
				"-[package]\n" +
				"+[PACKAGE]\n" +
				" name = \"gitbutler-core\"\n" +
				" version = \"0.0.0\"\n" +
				" edition = \"2021\"\n",
			wantOld: [2]uint32{1, 4},
			wantNew: [2]uint32{1, 4},
		},
		{
			name: "replace line bottom file",
			hunk: "@@ -13 +13 @@\n" +
				"-serde = { workspace = true, optional = true }\n" +
				"+SERDE = { workspace = true, optional = true }\n",
			startLine: 13,
			want: "@@ -10,5 +10,5 @@\n" +
				" \n" +
				" [dependencies]\n" +
				" rusqlite = { workspace = true, optional = true }\n" +
				"-serde = { workspace = true, optional = true }\n" +
				"+SERDE = { workspace = true, optional = true }\n" +
				" uuid = { workspace = true, features = [\"v4\", \"fast-rng\"] }\n",
			wantOld: [2]uint32{10, 5},
			wantNew: [2]uint32{10, 5},
		},
		{
			name: "pure addition",
			hunk: "@@ -8,0 +8 @@\n" +
				"+extra = []\n",
			startLine: 8,
			want: "@@ -5,6 +5,7 @@\n" +
				" \n" +
				" [features]\n" +
				" default = [\"serde\", \"rusqlite\"]\n" +
				"+extra = []\n" +
				" serde = [\"dep:serde\", \"uuid/serde\"]\n" +
				" rusqlite = [\"dep:rusqlite\"]\n" +
				" \n",
			wantOld: [2]uint32{5, 6},
			wantNew: [2]uint32{5, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := hunkctx.Expand(tt.hunk, tt.startLine, false, 3, cargoManifest())
			require.NoError(t, err)

			assert.Equal(t, tt.want, h.Diff)
			assert.Equal(t, tt.wantOld, [2]uint32{h.OldStart, h.OldLines})
			assert.Equal(t, tt.wantNew, [2]uint32{h.NewStart, h.NewLines})
			assert.False(t, h.Binary)
		})
	}
}

func TestExpand_ZeroWidth(t *testing.T) {
	t.Parallel()

	hunk := "@@ -8 +8 @@ default = [\"serde\", \"rusqlite\"]\n" +
		"-serde = [\"dep:serde\", \"uuid/serde\"]\n" +
		"+SERDE = [\"dep:serde\", \"uuid/serde\"]\n"

	h, err := hunkctx.Expand(hunk, 8, false, 0, cargoManifest())
	require.NoError(t, err)

	assert.Equal(t, "@@ -8,1 +8,1 @@\n"+
		"-serde = [\"dep:serde\", \"uuid/serde\"]\n"+
		"+SERDE = [\"dep:serde\", \"uuid/serde\"]\n", h.Diff)
	assert.Len(t, h.Lines, 2)
}

func TestExpand_NegativeWidthIsZero(t *testing.T) {
	t.Parallel()

	h, err := hunkctx.Expand("@@ -2 +2 @@\n-a\n+b\n", 2, false, -4, cargoManifest())
	require.NoError(t, err)
	assert.Equal(t, "@@ -2,1 +2,1 @@\n-a\n+b\n", h.Diff)
}

func TestExpand_WidthLargerThanFile(t *testing.T) {
	t.Parallel()

	before := cargoManifest()
	h, err := hunkctx.Expand("@@ -8 +8 @@\n-x\n+y\n", 8, false, 100, before)
	require.NoError(t, err)

	// 7 lines before the change, 6 after it.
	assert.Equal(t, uint32(1), h.OldStart)
	assert.Equal(t, uint32(14), h.OldLines)
	assert.Equal(t, uint32(14), h.NewLines)
	assert.Len(t, h.Lines, 15)
}

func TestExpand_TrailingNewline(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"@@ -1 +1 @@\n-[package]\n+[PACKAGE]",
		"@@ -1 +1 @@\n-[package]\n+[PACKAGE]\n",
		"@@ -1 +1 @@\r\n-[package]\r\n+[PACKAGE]\r\n",
	} {
		h, err := hunkctx.Expand(in, 1, false, 1, cargoManifest())
		require.NoError(t, err)
		assert.Equal(t, "@@ -1,2 +1,2 @@\n-[package]\n+[PACKAGE]\n name = \"gitbutler-core\"\n", h.Diff)
		assert.True(t, strings.HasSuffix(h.Diff, "\n"))
		assert.False(t, strings.HasSuffix(h.Diff, "\n\n"))
	}
}

func TestExpand_BinaryPassthrough(t *testing.T) {
	t.Parallel()

	h, err := hunkctx.Expand("@@ -1 +1 @@\n-a\n+b\n", 1, true, 3, nil)
	require.NoError(t, err)
	assert.True(t, h.Binary)
	assert.Equal(t, "@@ -1,1 +1,1 @@\n-a\n+b\n", h.Diff)
}

func TestExpand_LineKinds(t *testing.T) {
	t.Parallel()

	h, err := hunkctx.Expand("@@ -2 +2 @@\n-name\n+NAME\n", 2, false, 1, cargoManifest())
	require.NoError(t, err)

	assert.Equal(t, []hunkctx.Line{
		{Kind: hunkctx.LineContext, Content: "[package]"},
		{Kind: hunkctx.LineRemoved, Content: "name"},
		{Kind: hunkctx.LineAdded, Content: "NAME"},
		{Kind: hunkctx.LineContext, Content: "version = \"0.0.0\""},
	}, h.Lines)
}

func TestExpand_HeaderMatchesBody(t *testing.T) {
	t.Parallel()

	before := cargoManifest()
	hunk := "@@ -6,2 +6,3 @@\n-[features]\n-default = []\n+[features]\n+default = []\n+extra = []\n"
	for width := 0; width <= 8; width++ {
		h, err := hunkctx.Expand(hunk, 6, false, width, before)
		require.NoError(t, err)

		var oldCount, newCount uint32
		for _, l := range h.Lines {
			switch l.Kind {
			case hunkctx.LineContext:
				oldCount++
				newCount++
			case hunkctx.LineRemoved:
				oldCount++
			case hunkctx.LineAdded:
				newCount++
			}
		}
		assert.Equal(t, oldCount, h.OldLines, "width %d", width)
		assert.Equal(t, newCount, h.NewLines, "width %d", width)

		hdr, err := hunkctx.ParseHeader(strings.SplitN(h.Diff, "\n", 2)[0])
		require.NoError(t, err)
		assert.Equal(t, int(h.OldLines), hdr.OldLines)
		assert.Equal(t, int(h.NewLines), hdr.NewLines)
	}
}

func TestExpand_MalformedHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hunk      string
		wantField string
	}{
		{name: "non-numeric old start", hunk: "@@ -x +8 @@\n-a\n+b\n", wantField: hunkctx.FieldOldStart},
		{name: "non-numeric new start", hunk: "@@ -8 +y,2 @@\n-a\n+b\n", wantField: hunkctx.FieldNewStart},
		{name: "missing ranges", hunk: "@@ @@\n-a\n", wantField: hunkctx.FieldHeader},
		{name: "empty input", hunk: "", wantField: hunkctx.FieldHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := hunkctx.Expand(tt.hunk, 8, false, 3, cargoManifest())
			require.Error(t, err)

			var perr *hunkctx.HeaderParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantField, perr.Field)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}
