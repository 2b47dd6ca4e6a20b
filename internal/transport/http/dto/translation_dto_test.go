package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationRequestValidate(t *testing.T) {
	req := TranslationRequest{}
	assert.NotEmpty(t, req.Validate())

	req.TargetLanguage = "fr"
	assert.Empty(t, req.Validate())
}

func TestTranslationOptionsPreserveFormattingDefaultsOn(t *testing.T) {
	req := TranslationRequest{TargetLanguage: "fr"}
	assert.True(t, req.Options().PreserveFormatting)

	off := false
	req.PreserveFormatting = &off
	assert.False(t, req.Options().PreserveFormatting)

	on := true
	req.PreserveFormatting = &on
	assert.True(t, req.Options().PreserveFormatting)
}

func TestBatchQueryRequestValidate(t *testing.T) {
	req := BatchQueryRequest{}
	assert.NotEmpty(t, req.Validate())

	req.BatchID = "batch-1"
	assert.Empty(t, req.Validate())

	req = BatchQueryRequest{TaskIDs: []string{"a"}}
	assert.Empty(t, req.Validate())
}
