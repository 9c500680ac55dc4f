package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pagectl/internal/publish"
)

func TestPrintStepInitFailureIsFatal(t *testing.T) {
	res := &publish.StepResult{
		Step: publish.StepInit,
		Body: map[string]any{"error": map[string]any{"message": "bad token"}},
		OK:   false,
	}
	err := printStep(res)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "init")
}

func TestVideoMIME(t *testing.T) {
	assert.Equal(t, "video/quicktime", videoMIME("/tmp/clip.MOV"))
	assert.Equal(t, "video/x-msvideo", videoMIME("old.avi"))
	assert.Equal(t, "video/mp4", videoMIME("clip.mp4"))
	assert.Equal(t, "video/mp4", videoMIME("noext"))
}
