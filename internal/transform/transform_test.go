package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/namecheck/internal/model"
)

var allConventions = []model.NamingConvention{
	model.LowerCamelCase,
	model.UpperCamelCase,
	model.UnderscoreLowerCamelCase,
	model.InterfacePrefixUpperCamelCase,
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"count", "count"},
		{"_count", "Count"},
		{"my_value", "myValue"},
		{"MY_VALUE", "MYVALUE"},
		{"a__b", "aB"},
		{"trailing_", "trailing"},
		{"_", ""},
		{"__", ""},
		{"x_1", "x1"},
		{"größe_wert", "größeWert"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		description string
		conv        model.NamingConvention
		input       string
		expect      string
	}{
		{"lower camel already", model.LowerCamelCase, "myValue", "myValue"},
		{"lower camel from upper", model.LowerCamelCase, "MyValue", "myValue"},
		{"lower camel from snake", model.LowerCamelCase, "my_value", "myValue"},
		{"lower camel from underscore prefix", model.LowerCamelCase, "_count", "count"},
		{"upper camel from lower", model.UpperCamelCase, "myValue", "MyValue"},
		{"upper camel from snake", model.UpperCamelCase, "get_value", "GetValue"},
		{"upper camel already", model.UpperCamelCase, "Value", "Value"},
		{"upper camel digit first", model.UpperCamelCase, "1abc", "1abc"},
		{"underscore already", model.UnderscoreLowerCamelCase, "_count", "_count"},
		{"underscore from lower", model.UnderscoreLowerCamelCase, "count", "_count"},
		{"underscore from upper", model.UnderscoreLowerCamelCase, "Count", "_count"},
		{"underscore from upper prefixed", model.UnderscoreLowerCamelCase, "_Count", "_count"},
		{"underscore digit first", model.UnderscoreLowerCamelCase, "_1st", "1st"},
		{"interface already", model.InterfacePrefixUpperCamelCase, "IService", "IService"},
		{"interface lowercase rest", model.InterfacePrefixUpperCamelCase, "Iservice", "IService"},
		{"interface lowercase i", model.InterfacePrefixUpperCamelCase, "iLogger", "ILogger"},
		{"interface no prefix", model.InterfacePrefixUpperCamelCase, "Service", "IService"},
		{"interface no prefix lower", model.InterfacePrefixUpperCamelCase, "service", "IService"},
		{"interface lowercase i lowercase rest", model.InterfacePrefixUpperCamelCase, "isomething", "IIsomething"},
		{"interface single I", model.InterfacePrefixUpperCamelCase, "I", "I"},
		{"interface I digit", model.InterfacePrefixUpperCamelCase, "I2c", "I2c"},
		{"interface snake", model.InterfacePrefixUpperCamelCase, "i_repository", "IRepository"},
		{"punctuation refused", model.UpperCamelCase, "my$value", "my$value"},
		{"only underscores", model.UpperCamelCase, "__", "__"},
		{"single underscore", model.LowerCamelCase, "_", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			t.Parallel()
			got, err := Value(tt.input, tt.conv)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestValueInvalidConvention(t *testing.T) {
	t.Parallel()

	_, err := Value("name", model.NamingConvention(42))
	assert.ErrorIs(t, err, ErrInvalidConvention)
}

func TestApplyBypass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		description string
		id          model.Identifier
	}{
		{"verbatim", model.Identifier{Text: "@class", Value: "class", Verbatim: true}},
		{"unicode escape", model.Identifier{Text: `cl\u0061ss`, Value: "class"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			t.Parallel()
			for _, conv := range allConventions {
				got, err := Apply(tt.id, conv)
				require.NoError(t, err)
				assert.Equal(t, tt.id, got)
			}
		})
	}
}

func TestApplyPreservesTrivia(t *testing.T) {
	t.Parallel()

	loc := model.Location{File: "a.cs", Line: 3, Column: 9, StartByte: 40, EndByte: 47}
	id := model.Identifier{Text: "myValue", Value: "myValue", Leading: " ", Trailing: "  ", Location: loc}

	got, err := Apply(id, model.UpperCamelCase)
	require.NoError(t, err)
	assert.Equal(t, "MyValue", got.Text)
	assert.Equal(t, "MyValue", got.Value)
	assert.Equal(t, " ", got.Leading)
	assert.Equal(t, "  ", got.Trailing)
	assert.Equal(t, loc, got.Location)
}

func TestApplyInvalidConvention(t *testing.T) {
	t.Parallel()

	id := model.Identifier{Text: "name", Value: "name"}
	got, err := Apply(id, model.NamingConvention(-1))
	assert.ErrorIs(t, err, ErrInvalidConvention)
	assert.Equal(t, id, got)
}

// Rewriting is a fixed point: a rewritten value already follows its convention.
func TestValueIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"count", "_count", "Count", "_Count", "my_value", "MY_VALUE", "a__b", "trailing_",
		"x", "X", "i", "I", "iLogger", "Iservice", "IService", "isomething", "ix", "iI", "Ii",
		"_1", "_1a", "1abc", "__a", "get_HTTP_client", "value2", "_", "Ωmega", "ωmega", "名前",
	}

	for _, in := range inputs {
		for _, conv := range allConventions {
			once, err := Value(in, conv)
			require.NoError(t, err)
			twice, err := Value(once, conv)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "Value(%q, %s) is not a fixed point", in, conv)
		}
	}
}
