package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/stretchr/testify/require"
)

// nopLogger 丢弃所有输出的 Logger，测试用。
type nopLogger struct{}

func (nopLogger) Debug(args ...interface{})                         {}
func (nopLogger) Debugf(format string, args ...interface{})         {}
func (nopLogger) Info(args ...interface{})                          {}
func (nopLogger) Infof(format string, args ...interface{})          {}
func (nopLogger) Warn(args ...interface{})                          {}
func (nopLogger) Warnf(format string, args ...interface{})          {}
func (nopLogger) Error(args ...interface{})                         {}
func (nopLogger) Errorf(format string, args ...interface{})         {}
func (nopLogger) Fatal(args ...interface{})                         {}
func (nopLogger) Fatalf(format string, args ...interface{})         {}
func (n nopLogger) WithFields(map[string]interface{}) logger.Logger { return n }
func (n nopLogger) WithField(string, interface{}) logger.Logger     { return n }

func testLogger() logger.Logger {
	return nopLogger{}
}

// blockingReconciler 卡在 Reconcile 里直到 release 关闭，统计并发进入数。
type blockingReconciler struct {
	entered int32
	inside  int32
	maxIn   int32
	release chan struct{}
}

func (b *blockingReconciler) Reconcile(ctx context.Context, now time.Time) error {
	atomic.AddInt32(&b.entered, 1)
	in := atomic.AddInt32(&b.inside, 1)
	for {
		prev := atomic.LoadInt32(&b.maxIn)
		if in <= prev || atomic.CompareAndSwapInt32(&b.maxIn, prev, in) {
			break
		}
	}
	<-b.release
	atomic.AddInt32(&b.inside, -1)
	return nil
}

func TestRunOnceSingleFlight(t *testing.T) {
	rec := &blockingReconciler{release: make(chan struct{})}
	r := NewRunner(rec, time.Minute, testLogger())

	var wg sync.WaitGroup
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		require.True(t, r.RunOnce(context.Background()))
	}()
	<-started

	// 等第一轮真正进入 Reconcile
	for atomic.LoadInt32(&rec.entered) == 0 {
		time.Sleep(time.Millisecond)
	}

	// 在跑时再触发：必须被跳过，不会并发进入
	require.False(t, r.RunOnce(context.Background()))
	require.False(t, r.RunOnce(context.Background()))

	close(rec.release)
	wg.Wait()

	require.EqualValues(t, 1, rec.entered)
	require.EqualValues(t, 1, rec.maxIn)

	// 上一轮结束后可以再跑
	rec.release = make(chan struct{})
	close(rec.release)
	require.True(t, r.RunOnce(context.Background()))
	require.EqualValues(t, 2, rec.entered)
}
