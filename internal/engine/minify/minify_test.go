package minify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sheaf/internal/engine/minify"
)

func TestPipeline_Minify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "worked example",
			in:   "a { color: #fff; ;  }\n/* comment */\nb , c { margin : 0 ; }",
			want: "a{color:#fff}b,c{margin:0}",
		},
		{
			name: "preserved comments survive",
			in:   "/*!\nbase.css\n*/\na { color : red; }",
			want: "/*!\nbase.css\n*/\na{color:red}",
		},
		{
			name: "multiline comment",
			in:   "a{}\n/* one\n two */\nb{}",
			want: "a{}b{}",
		},
		{
			name: "crlf line endings",
			in:   "a {\r\n  color: red;\r\n}\r\n",
			want: "a{color:red}",
		},
		{
			name: "commas inside declarations are kept",
			in:   "a { font-family: Arial , sans-serif; }",
			want: "a{font-family:Arial , sans-serif}",
		},
		{
			name: "selector list across lines",
			in:   "h1,\nh2 ,\nh3 { margin: 0 }",
			want: "h1,h2,h3{margin:0}",
		},
		{
			name: "empty input",
			in:   " \n\t ",
			want: "",
		},
	}

	p := minify.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Minify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	inputs := []string{
		"a { color: #fff; ;  }\n/* comment */\nb , c { margin : 0 ; }",
		"/*!\nx.css\n*/\n.x , .y > z { background : url(a.png) ; color:red }",
		"@media (max-width: 10px) { a { b : c; } }",
	}

	p := minify.New()
	for _, in := range inputs {
		once, err := p.Minify(in)
		require.NoError(t, err)
		twice, err := p.Minify(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestStages_Order(t *testing.T) {
	var names []string
	for _, s := range minify.Stages() {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		"trim",
		"strip-comments",
		"collapse-punctuation",
		"dedupe-semicolons",
		"drop-last-semicolon",
		"tighten-colons",
		"tighten-selector-commas",
	}, names)
}

func TestStages_Individually(t *testing.T) {
	stages := map[string]minify.Stage{}
	for _, s := range minify.Stages() {
		stages[s.Name] = s
	}

	tests := []struct {
		stage string
		in    string
		want  string
	}{
		{stage: "trim", in: "\r\n a \r\n", want: "a"},
		{stage: "strip-comments", in: "a /* x */ b /*! keep */", want: "ab /*! keep */"},
		{stage: "collapse-punctuation", in: "a { b ; }", want: "a{b;}"},
		{stage: "dedupe-semicolons", in: "a;;;b", want: "a;b"},
		{stage: "drop-last-semicolon", in: "{a;}", want: "{a}"},
		{stage: "tighten-colons", in: "{color :  red;top : 0", want: "{color:red;top:0"},
		{stage: "tighten-selector-commas", in: "a , b{c,d}", want: "a,b{c,d}"},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			got, err := stages[tt.stage].Apply(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
