package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/colors.md":       {Data: []byte("# Colours\n\nPalette details")},
		"help/formats.txt":     {Data: []byte("Supported formats")},
		"help/option-cols.txt": {Data: []byte("Columns help")},
		"help/notes.txxt":      {Data: []byte("Ignored by default")},
		"help/ignore.json":     {Data: []byte("{}")},
		"help/advanced/elf.md": {Data: []byte("ELF details")},
		"other/not-a-topic.md": {Data: []byte("outside root")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS(), "help")
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"colors", true, "# Colours\n\nPalette details"},
			{"formats", true, "Supported formats"},
			{"elf", true, "ELF details"},
			{"notes", false, ""},
			{"ignore", false, ""},
			{"not-a-topic", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), "help", Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("missing root", func(t *testing.T) {
		tm := New(testFS(), "nowhere")
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"colors", "colors", true},
		{"option-cols", "option-cols", true},
		{"cols", "option-cols", true},
		{"--cols", "option-cols", true},
		{"-c", "", false},
		{"nonexistent", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_ListTopics(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"colors", "elf", "formats", "option-cols"}, tm.ListTopics())
}

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Dump something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	_, err := Initialize(rootCmd, testFS(), "help")
	require.NoError(t, err)
	return rootCmd, out
}

func TestInitialize(t *testing.T) {
	rootCmd, _ := newTestRoot(t)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestIntegration_HelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		rootCmd, out := newTestRoot(t)
		rootCmd.SetArgs([]string{"help", "formats"})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "Supported formats", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		rootCmd, out := newTestRoot(t)
		rootCmd.SetArgs([]string{"help", "topics"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "General topics:\n  colors\n  elf\n  formats\n")
		assert.Contains(t, out.String(), "Option topics:\n  --cols\n")
		assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
	})

	t.Run("command help", func(t *testing.T) {
		rootCmd, out := newTestRoot(t)
		rootCmd.SetArgs([]string{"help", "dump"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Dump something")
	})
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestGlamourRendererMarkdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Colours\n\nPalette details\n", ".md")
	assert.Contains(t, out, "Colours")
	assert.Contains(t, out, "Palette details")
	assert.NotNil(t, r.term, "renderer is reused")
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# raw", r.Render("# raw", ".md"))
}
