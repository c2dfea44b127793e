package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Generate(_ context.Context, _ string, _ int) (string, error) {
	return s.text, s.err
}

func (s *stubClient) Close() error { return nil }

func TestGenerate_NilClient(t *testing.T) {
	outcome := Generate(context.Background(), nil, "prompt", 100)

	assert.False(t, outcome.OK())
	assert.Equal(t, "no generation client configured", outcome.FailureReason)
	assert.Equal(t, "fallback", outcome.TextOr("fallback"))
}

func TestGenerate_Success(t *testing.T) {
	client := &stubClient{text: "generated text"}

	outcome := Generate(context.Background(), client, "prompt", 100)

	assert.True(t, outcome.OK())
	assert.Equal(t, "generated text", outcome.TextOr("fallback"))
}

func TestGenerate_ClientError(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}

	outcome := Generate(context.Background(), client, "prompt", 100)

	assert.False(t, outcome.OK())
	assert.Equal(t, "quota exceeded", outcome.FailureReason)
	assert.Equal(t, "fallback", outcome.TextOr("fallback"))
}

func TestTextOr_EmptyTextFallsBack(t *testing.T) {
	outcome := Outcome{Text: ""}

	assert.True(t, outcome.OK())
	assert.Equal(t, "fallback", outcome.TextOr("fallback"))
}
