package querytmpl_test

import (
	"testing"

	"github.com/itsatony/go-querytmpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// End-to-end tests through the public API.

func TestE2E_ParseFormTypeScenario(t *testing.T) {
	engine := querytmpl.MustNew()

	result := engine.Parse("form_type = {Form Type:FormTypes:8-K}")

	require.True(t, result.IsValid)
	require.Len(t, result.Placeholders, 1)
	ph := result.Placeholders[0]
	assert.Equal(t, "Form Type", ph.Label)
	assert.Equal(t, querytmpl.TypeFormTypes, ph.TypeName)
	assert.Equal(t, "8-K", ph.DefaultValue)
}

func TestE2E_ParseThenCompile(t *testing.T) {
	engine := querytmpl.MustNew()
	template := "form_type = {Form Type:FormTypes:8-K} and {Tags:Tags:} && tags order by snowflake desc limit {Limit:NumberInput:50}"

	parsed := engine.Parse(template)
	require.True(t, parsed.IsValid)

	values := engine.DefaultValues(parsed)
	values[0] = querytmpl.Text("10-K")
	values[1] = querytmpl.ToggleTag(values[1], "Presentation")

	result := engine.Compile(template, values)

	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.Equal(t, "form_type = '10-K' and 'Presentation' && tags order by snowflake desc limit 50", result.CompiledText)
}

func TestE2E_UnclosedBrace(t *testing.T) {
	engine := querytmpl.MustNew()

	result := engine.Parse("test { unclosed")

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Messages(), "Unmatched opening brace")
}

func TestE2E_HasPlaceholders(t *testing.T) {
	engine := querytmpl.MustNew()

	assert.True(t, engine.HasPlaceholders("limit {Limit:NumberInput:50}"))
	assert.False(t, engine.HasPlaceholders(`limit \{50\}`))
}

func TestE2E_WithTypes(t *testing.T) {
	ticker := &querytmpl.DescriptorFuncs{
		Name:          "Ticker",
		Display:       "Ticker",
		SerializeFunc: func(v querytmpl.Value) string { return "upper(" + querytmpl.SerializeText(v) + ")" },
	}
	engine, err := querytmpl.New(querytmpl.WithTypes(ticker))
	require.NoError(t, err)

	result := engine.Compile("ticker = {T:Ticker}", []querytmpl.Value{querytmpl.Text("msft")})

	require.True(t, result.Success)
	assert.Equal(t, "ticker = upper('msft')", result.CompiledText)
	assert.Contains(t, engine.Registry().TypeNames(), "Ticker")
}

func TestE2E_WithTypesRejectsInvalidDescriptor(t *testing.T) {
	_, err := querytmpl.New(querytmpl.WithTypes(&querytmpl.DescriptorFuncs{}))
	require.Error(t, err)

	assert.Panics(t, func() {
		querytmpl.MustNew(querytmpl.WithTypes(nil))
	})
}

func TestE2E_SharedRegistry(t *testing.T) {
	registry := querytmpl.NewRegistry(nil)
	first := querytmpl.MustNew(querytmpl.WithRegistry(registry))
	second := querytmpl.MustNew(querytmpl.WithRegistry(registry))

	require.NoError(t, first.Register(&querytmpl.DescriptorFuncs{Name: "Shared"}))

	assert.True(t, second.Parse("{S:Shared}").IsValid)
	assert.Same(t, registry, second.Registry())
}

func TestE2E_WithFormTypes(t *testing.T) {
	engine := querytmpl.MustNew(querytmpl.WithFormTypes([]querytmpl.FormType{{Code: "10-K"}, {Code: "S-4"}}))

	assert.Equal(t, []string{"10-K", "S-4"}, engine.Registry().Options(querytmpl.TypeFormTypes))
}

func TestE2E_WithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := querytmpl.MustNew(querytmpl.WithLogger(zap.New(core)))

	engine.Compile("{A}", nil)

	assert.NotZero(t, logs.FilterMessage(querytmpl.LogMsgEngineCreated).Len())
	assert.NotZero(t, logs.FilterMessage(querytmpl.LogMsgCompileEnd).Len())
	assert.NotNil(t, engine.Logger())
}

func TestE2E_MustRegisterPanicsOnNil(t *testing.T) {
	engine := querytmpl.MustNew()

	assert.Panics(t, func() { engine.MustRegister(nil) })
}
