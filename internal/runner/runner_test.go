package runner

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunWorkerSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWorker := NewMockWorker(ctrl)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	mockWorker.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}).
		Times(1)

	r := NewRunner()
	r.AddWorker(mockWorker)

	require.NoError(t, r.Run(ctx))
}

func TestRunner_RunWorkerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := NewMockWorker(ctrl)
	other := NewMockWorker(ctrl)
	expectedErr := errors.New("worker failed")

	failing.EXPECT().Run(gomock.Any()).Return(expectedErr).Times(1)

	otherStopped := make(chan struct{})
	other.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			<-ctx.Done()
			close(otherStopped)
			return nil
		}).
		Times(1)

	r := NewRunner()
	r.AddWorker(failing)
	r.AddWorker(other)

	err := r.Run(context.Background())
	require.EqualError(t, err, expectedErr.Error())

	select {
	case <-otherStopped:
	default:
		t.Fatal("sibling worker was not stopped")
	}
}

func TestRunner_RunHTTPServerGracefulShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockHTTPServer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closed := make(chan struct{})

	mockServer.EXPECT().
		ListenAndServe().
		DoAndReturn(func() error {
			<-closed
			return http.ErrServerClosed
		}).
		Times(1)

	mockServer.EXPECT().
		Shutdown(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
			close(closed)
			return nil
		}).
		Times(1)

	r := NewRunner(WithShutdownTimeout(0, 2*time.Second))
	r.AddHTTPServer(mockServer)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, r.Run(ctx))
}

func TestRunner_RunHTTPServerListenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockHTTPServer(ctrl)
	expectedErr := errors.New("listen error")

	mockServer.EXPECT().
		ListenAndServe().
		Return(expectedErr).
		Times(1)
	mockServer.EXPECT().
		Shutdown(gomock.Any()).
		Return(nil).
		Times(1)

	r := NewRunner()
	r.AddHTTPServer(mockServer)

	err := r.Run(context.Background())
	require.EqualError(t, err, expectedErr.Error())
}

func TestRunner_ShutdownError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockHTTPServer(ctrl)
	closed := make(chan struct{})
	shutdownErr := errors.New("context deadline exceeded")

	mockServer.EXPECT().
		ListenAndServe().
		DoAndReturn(func() error {
			<-closed
			return http.ErrServerClosed
		})
	mockServer.EXPECT().
		Shutdown(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			close(closed)
			return shutdownErr
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner()
	r.AddHTTPServer(mockServer)
	assert.ErrorIs(t, r.Run(ctx), shutdownErr)
}

func TestRunner_WorkerFailureShutsDownServers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	worker := NewMockWorker(ctrl)
	server := NewMockHTTPServer(ctrl)
	closed := make(chan struct{})
	expectedErr := errors.New("poller crashed")

	worker.EXPECT().Run(gomock.Any()).Return(expectedErr)
	server.EXPECT().ListenAndServe().DoAndReturn(func() error {
		<-closed
		return http.ErrServerClosed
	})
	server.EXPECT().Shutdown(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(closed)
		return nil
	})

	r := NewRunner()
	r.AddWorker(worker)
	r.AddHTTPServer(server)

	assert.EqualError(t, r.Run(context.Background()), expectedErr.Error())
}
