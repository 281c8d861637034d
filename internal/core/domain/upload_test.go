package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, UploadProgress{Uploaded: 10, Total: -1}.Percent())
	assert.Equal(t, 0.0, UploadProgress{Uploaded: 0, Total: 0}.Percent())
	assert.Equal(t, 50.0, UploadProgress{Uploaded: 5, Total: 10}.Percent())
	assert.Equal(t, 100.0, UploadProgress{Uploaded: 10, Total: 10}.Percent())
}
