package pose

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, f *Feed) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(f.Handler())
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + DefaultFeedPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFeedReturnsNewestMessage(t *testing.T) {
	f := NewFeed("", "")
	_, err := f.EstimateSinglePose(context.Background())
	assert.ErrorIs(t, err, ErrNoPose)

	conn := dialFeed(t, f)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"score":0.8,"keypoints":[{"part":"leftHip","score":0.9,"position":{"x":100,"y":200}}]}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"score":0.7,"keypoints":[{"part":"rightHip","score":0.9,"position":{"x":140,"y":200}}]}`)))

	require.Eventually(t, func() bool {
		p, err := f.EstimateSinglePose(context.Background())
		return err == nil && p.Score == 0.7
	}, time.Second, 5*time.Millisecond)

	p, err := f.EstimateSinglePose(context.Background())
	require.NoError(t, err)
	k, ok := p.Find(PartRightHip)
	require.True(t, ok)
	assert.Equal(t, float32(140), k.Position.X)
}

func TestFeedIgnoresMalformedMessages(t *testing.T) {
	var mu sync.Mutex
	var errs []error
	f := NewFeed("", "")
	f.OnMessageError = func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	conn := dialFeed(t, f)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"score":0.5}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(errs) == 1
	}, time.Second, 5*time.Millisecond)

	p, err := f.EstimateSinglePose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), p.Score)
	mu.Lock()
	assert.ErrorContains(t, errs[0], "decode message")
	mu.Unlock()
}

func TestFeedSkipsBinaryFrames(t *testing.T) {
	var mu sync.Mutex
	var errs []error
	f := NewFeed("", "")
	f.OnMessageError = func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	conn := dialFeed(t, f)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"score":0.6}`)))

	require.Eventually(t, func() bool {
		p, err := f.EstimateSinglePose(context.Background())
		return err == nil && p.Score == 0.6
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Empty(t, errs, "binary frames are not pose messages")
	mu.Unlock()
}

func TestFeedCancelledContext(t *testing.T) {
	f := NewFeed("", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.EstimateSinglePose(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeedStartFailsOnBadAddr(t *testing.T) {
	f := NewFeed("256.0.0.1:bad", "")
	err := f.Start()
	assert.ErrorContains(t, err, "pose: listen")
	assert.NoError(t, f.Close())
}

func TestFeedStartAndClose(t *testing.T) {
	f := NewFeed("127.0.0.1:0", "")
	require.NoError(t, f.Start())
	assert.NotEqual(t, "127.0.0.1:0", f.Addr())
	assert.NoError(t, f.Close())
}
