package adapter_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/mocks"
)

func TestCanonicalize(t *testing.T) {
	options := map[string]any{"generate_ids": true}

	t.Run("transforms the marshaled document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonAdapter := mocks.NewMockJSON(ctrl)
		jcsAdapter := mocks.NewMockJCS(ctrl)

		jsonAdapter.EXPECT().Marshal(options).Return([]byte(`{ "generate_ids" : true }`), nil)
		jcsAdapter.EXPECT().Transform([]byte(`{ "generate_ids" : true }`)).Return([]byte(`{"generate_ids":true}`), nil)

		out, err := adapter.Canonicalize(jsonAdapter, jcsAdapter, options)
		require.NoError(t, err)
		assert.Equal(t, `{"generate_ids":true}`, string(out))
	})

	t.Run("marshal failure skips the transform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonAdapter := mocks.NewMockJSON(ctrl)
		jcsAdapter := mocks.NewMockJCS(ctrl)

		jsonAdapter.EXPECT().Marshal(options).Return(nil, errors.New("unsupported type"))

		out, err := adapter.Canonicalize(jsonAdapter, jcsAdapter, options)
		assert.ErrorContains(t, err, "unsupported type")
		assert.Nil(t, out)
	})

	t.Run("transform failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jcsAdapter := mocks.NewMockJCS(ctrl)

		jcsAdapter.EXPECT().Transform(gomock.Any()).Return(nil, errors.New("invalid number"))

		_, err := adapter.Canonicalize(adapter.NewJSON(), jcsAdapter, options)
		assert.ErrorContains(t, err, "invalid number")
	})
}
