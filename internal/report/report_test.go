package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/namecheck/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Root:    "repo",
		Checked: 4,
		Files: []model.FileReport{
			{
				Path: "Program.cs",
				Findings: []model.Finding{
					{Location: model.Location{Line: 3, Column: 16}, Kind: "field", Original: "myValue", Corrected: "MyValue"},
					{Location: model.Location{Line: 9, Column: 11}, Kind: "interface", Original: "iLogger", Corrected: "ILogger"},
				},
			},
		},
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport(), Options{}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Program.cs:3:16: warning: The field myValue does not follow naming conventions. Should be MyValue.",
		"Program.cs:9:11: warning: The interface iLogger does not follow naming conventions. Should be ILogger.",
		"2 findings in 1 file (4 checked)",
	}, lines)
}

func TestTextColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport(), Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Should be MyValue.")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 findings in 0 files (0 checked)", Summary(&model.Report{}))
	one := &model.Report{Checked: 1, Files: []model.FileReport{{Path: "A.cs", Findings: []model.Finding{{Kind: "class"}}}}}
	assert.Equal(t, "1 finding in 1 file (1 checked)", Summary(one))
}

func TestApplied(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	applied := sampleReport().Files[0].Findings[:1]
	require.NoError(t, Applied(&buf, "Program.cs", applied, Options{}))
	assert.Equal(t, "Program.cs:3:16: renamed field myValue -> MyValue\n", buf.String())
}
