package querytmpl

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(nil)

	require.NotNil(t, r)
	assert.Equal(t, 4, r.Count())
	assert.Equal(t, []string{TypeFormTypes, TypeNumberInput, TypeStringInput, TypeTags}, r.TypeNames())
	assert.Equal(t, TypeStringInput, r.FallbackType())
}

func TestRegistry_Register(t *testing.T) {
	t.Run("adds new type", func(t *testing.T) {
		r := NewRegistry(nil)

		err := r.Register(&DescriptorFuncs{Name: "Ticker"})
		require.NoError(t, err)

		assert.True(t, r.IsRegistered("Ticker"))
		assert.Equal(t, 5, r.Count())
		assert.Contains(t, r.TypeNames(), "Ticker")
	})

	t.Run("overwrites existing type", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		r := NewRegistry(zap.New(core))

		err := r.Register(&DescriptorFuncs{
			Name:          TypeStringInput,
			SerializeFunc: func(v Value) string { return "\"" + v.String() + "\"" },
		})
		require.NoError(t, err)

		assert.Equal(t, 4, r.Count())
		assert.Equal(t, `"x"`, r.Serialize(TypeStringInput, Text("x")))
		require.Equal(t, 1, logs.FilterMessage(LogMsgTypeOverwritten).Len())
	})

	t.Run("rejects nil descriptor", func(t *testing.T) {
		r := NewRegistry(nil)

		err := r.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilDescriptor)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		r := NewRegistry(nil)

		err := r.Register(&DescriptorFuncs{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyTypeName)
		assert.Equal(t, 4, r.Count())
	})
}

func TestRegistry_MustRegister(t *testing.T) {
	r := NewRegistry(nil)

	assert.NotPanics(t, func() { r.MustRegister(&DescriptorFuncs{Name: "Ok"}) })
	assert.Panics(t, func() { r.MustRegister(nil) })
}

func TestRegistry_UnknownType(t *testing.T) {
	r := NewRegistry(nil)

	_, ok := r.Get("Nope")
	assert.False(t, ok)
	assert.False(t, r.IsRegistered("Nope"))
	assert.Equal(t, "'it''s'", r.Serialize("Nope", Text("it's")))
	assert.Equal(t, Text(""), r.DefaultValue("Nope"))
	assert.NoError(t, r.Validate("Nope", Number(1)))
	assert.Empty(t, r.Constraint("Nope"))
	assert.Nil(t, r.Options("Nope"))
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(&DescriptorFuncs{Name: "Custom"})
	r.MustRegister(&DescriptorFuncs{Name: TypeNumberInput})

	r.Reset()

	assert.Equal(t, 4, r.Count())
	assert.False(t, r.IsRegistered("Custom"))
	assert.Equal(t, "25", r.Serialize(TypeNumberInput, Number(25)))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.MustRegister(&DescriptorFuncs{Name: fmt.Sprintf("Type%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_ = r.TypeNames()
			_ = r.Serialize(TypeTags, List{"a"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 54, r.Count())
}
