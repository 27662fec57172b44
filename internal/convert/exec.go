package convert

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/justyntemme/vista/internal/debug"
)

// maxOutput caps the captured converter output.
const maxOutput = 64 << 10

// limitedBuffer keeps the first maxOutput bytes and drops the rest.
type limitedBuffer struct {
	buf bytes.Buffer
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := maxOutput - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string { return b.buf.String() }

// run executes path with args. The process must start within startTimeout
// and exit within runTimeout; otherwise it is killed and the returned
// error matches ErrTimeout. The combined output is always returned.
func run(ctx context.Context, path string, args []string, startTimeout, runTimeout time.Duration) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	var out limitedBuffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = 2 * time.Second
	configureProcess(cmd)

	started := make(chan error, 1)
	go func() { started <- cmd.Start() }()

	timer := time.NewTimer(startTimeout)
	defer timer.Stop()

	select {
	case err := <-started:
		if err != nil {
			return "", err
		}
	case <-timer.C:
		cancel()
		// Start still has to return before the process can be reaped.
		if err := <-started; err == nil {
			cmd.Wait()
		}
		debug.Log(debug.CONVERT, "%s did not start within %v", path, startTimeout)
		return out.String(), ErrTimeout
	}

	err := cmd.Wait()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		debug.Log(debug.CONVERT, "%s killed after %v", path, runTimeout)
		return out.String(), ErrTimeout
	}
	if ctx.Err() != nil {
		return out.String(), ctx.Err()
	}
	return out.String(), err
}
