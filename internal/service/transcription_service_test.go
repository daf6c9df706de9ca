package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Juicern/scribe/internal/app"
	"github.com/Juicern/scribe/internal/domain"
)

func newTestService(llm *stubLLM) (*TranscriptionService, *app.LatestStore) {
	store := app.NewLatestStore(nil)
	return NewTranscriptionService(llm, store, nil), store
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *service.Error, got %T", err)
	require.Equal(t, kind, svcErr.Kind)
	return svcErr
}

func TestTranscribeStoresModelOutput(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, store := newTestService(llm)
	audio := []byte("RIFF....WAVEfmt ")

	text, err := svc.Transcribe(context.Background(), audioUpload("sample.wav", "audio/wav", audio))
	require.NoError(t, err)
	require.Equal(t, "echo: Transcribe the following audio to text:", text)

	calls := llm.calls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Inline)
	require.Equal(t, "audio/wav", calls[0].Inline.MIMEType)
	require.Equal(t, base64.StdEncoding.EncodeToString(audio), calls[0].Inline.Data)

	cached, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, text, cached.Text)
}

func TestTranscribeRejectsBeforeModelCall(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, store := newTestService(llm)
	store.Put("previous")

	_, err := svc.Transcribe(context.Background(), nil)
	requireKind(t, err, KindClient)

	_, err = svc.Transcribe(context.Background(), audioUpload("a.txt", "text/plain", []byte("x")))
	requireKind(t, err, KindClient)

	require.Empty(t, llm.calls())
	cached, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "previous", cached.Text)
}

func TestTranscribeModelFailureLeavesCache(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{err: errors.New("deadline exceeded")}
	svc, store := newTestService(llm)

	_, err := svc.Transcribe(context.Background(), audioUpload("a.ogg", "audio/ogg", []byte("x")))
	svcErr := requireKind(t, err, KindServer)
	require.Equal(t, "Internal server error: deadline exceeded", svcErr.Message)

	_, err = store.Get()
	require.ErrorIs(t, err, app.ErrNoTranscription)
}

func TestTranscribeReadFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, _ := newTestService(llm)
	upload := &domain.UploadedAudio{
		Filename:         "a.webm",
		DeclaredMIMEType: "audio/webm",
		Size:             4,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk gone")
		},
	}

	_, err := svc.Transcribe(context.Background(), upload)
	svcErr := requireKind(t, err, KindServer)
	require.Contains(t, svcErr.Message, "disk gone")
	require.Empty(t, llm.calls())
}

func TestTranscribeOverwritesLatest(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, store := newTestService(llm)
	store.Put("older transcription")

	text, err := svc.Transcribe(context.Background(), audioUpload("b.mp3", "audio/mpeg", []byte("ID3")))
	require.NoError(t, err)

	cached, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, text, cached.Text)
}

func TestSummarizeAndEnhanceWithoutTranscription(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, _ := newTestService(llm)

	_, err := svc.SummarizeLatest(context.Background())
	svcErr := requireKind(t, err, KindClient)
	require.Equal(t, msgNoTranscription, svcErr.Message)

	_, err = svc.EnhanceLatest(context.Background())
	svcErr = requireKind(t, err, KindClient)
	require.Equal(t, msgNoTranscription, svcErr.Message)

	require.Empty(t, llm.calls())
}

func TestSummarizeAndEnhancePrompts(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, store := newTestService(llm)
	store.Put("we met at noon")

	summary, err := svc.SummarizeLatest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "echo: Summarize this: we met at noon", summary)

	enhanced, err := svc.EnhanceLatest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "echo: Enhance the grammar and clarity of this text: we met at noon", enhanced)

	for _, call := range llm.calls() {
		require.Nil(t, call.Inline)
	}
}

func TestSummarizeAndEnhanceModelFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{err: errors.New("quota exceeded")}
	svc, store := newTestService(llm)
	store.Put("text")

	_, err := svc.SummarizeLatest(context.Background())
	svcErr := requireKind(t, err, KindServer)
	require.Equal(t, "Error summarizing text: quota exceeded", svcErr.Message)

	_, err = svc.EnhanceLatest(context.Background())
	svcErr = requireKind(t, err, KindServer)
	require.Equal(t, "Error enhancing text: quota exceeded", svcErr.Message)
}

func TestSummarizeIsNotCached(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{}
	svc, store := newTestService(llm)
	store.Put("same input")

	_, err := svc.SummarizeLatest(context.Background())
	require.NoError(t, err)
	_, err = svc.SummarizeLatest(context.Background())
	require.NoError(t, err)

	calls := llm.calls()
	require.Len(t, calls, 2)
	require.Equal(t, calls[0], calls[1])
}
