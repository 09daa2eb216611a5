package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestExtractTaskPayload(t *testing.T) {
	job := cv.ExtractJob{
		CVID:        uuid.New(),
		OwnerID:     uuid.New(),
		StorageKey:  "cvs/x/y.pdf",
		ContentType: cv.MediaTypePDF,
		FileName:    "y.pdf",
	}
	task, err := NewExtractTask(job)
	require.NoError(t, err)
	assert.Equal(t, ExtractCVTask, task.Type())
	assert.Contains(t, string(task.Payload()), `"storage_key":"cvs/x/y.pdf"`)

	got, err := DecodeExtract(task)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestDecodeExtractRejectsGarbage(t *testing.T) {
	_, err := DecodeExtract(asynq.NewTask(ExtractCVTask, []byte("{")))
	assert.Error(t, err)
}
