package notify

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// SoundPlayer is one strategy for producing the audible alert cue.
// Players are tried in order; a Start error means "fall through to the
// next one".
type SoundPlayer interface {
	Name() string
	Start(loop bool) error
	Stop()
}

// DefaultSoundChain is the fallback order: the configured sound asset,
// the embedded tone, then the terminal bell. assetPath may be empty.
func DefaultSoundChain(assetPath string) []SoundPlayer {
	return []SoundPlayer{
		NewAssetPlayer(assetPath),
		NewEmbeddedPlayer(),
		NewBellPlayer(),
	}
}

func playbackCommand(path string) (string, []string, error) {
	switch runtime.GOOS {
	case "linux":
		if bin, err := exec.LookPath("paplay"); err == nil {
			return bin, []string{path}, nil
		}
		if bin, err := exec.LookPath("aplay"); err == nil {
			return bin, []string{"-q", path}, nil
		}
		return "", nil, errors.New("notify: no audio player found")
	case "darwin":
		bin, err := exec.LookPath("afplay")
		if err != nil {
			return "", nil, errors.New("notify: afplay not found")
		}
		return bin, []string{path}, nil
	default:
		return "", nil, fmt.Errorf("notify: audio playback unsupported on %s", runtime.GOOS)
	}
}

// cmdLoop repeatedly runs a playback command until stopped. Without
// loop it plays once.
type cmdLoop struct {
	mu     sync.Mutex
	stopCh chan struct{}
	cmd    *exec.Cmd
}

func (c *cmdLoop) start(bin string, args []string, loop bool) {
	c.mu.Lock()
	c.stopCh = make(chan struct{})
	stopCh := c.stopCh
	c.mu.Unlock()

	go func() {
		for {
			cmd := exec.Command(bin, args...)
			c.mu.Lock()
			select {
			case <-stopCh:
				c.mu.Unlock()
				return
			default:
			}
			c.cmd = cmd
			c.mu.Unlock()

			_ = cmd.Run()
			if !loop {
				return
			}
			select {
			case <-stopCh:
				return
			case <-time.After(500 * time.Millisecond):
			}
		}
	}()
}

func (c *cmdLoop) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopCh != nil {
		select {
		case <-c.stopCh:
		default:
			close(c.stopCh)
		}
	}
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	c.cmd = nil
}

// AssetPlayer plays a sound file from disk.
type AssetPlayer struct {
	path string
	loop cmdLoop
}

func NewAssetPlayer(path string) *AssetPlayer {
	return &AssetPlayer{path: path}
}

func (p *AssetPlayer) Name() string { return "asset" }

func (p *AssetPlayer) Start(loop bool) error {
	if p.path == "" {
		return errors.New("notify: no sound asset configured")
	}
	if _, err := os.Stat(p.path); err != nil {
		return fmt.Errorf("notify: sound asset unavailable: %w", err)
	}
	bin, args, err := playbackCommand(p.path)
	if err != nil {
		return err
	}
	p.loop.start(bin, args, loop)
	return nil
}

func (p *AssetPlayer) Stop() {
	p.loop.stop()
}

// EmbeddedPlayer carries its own WAV payload so an install without the
// sound asset still gets a cue. The payload is written to a temp file
// on first use.
type EmbeddedPlayer struct {
	once    sync.Once
	onceErr error
	path    string
	loop    cmdLoop
}

func NewEmbeddedPlayer() *EmbeddedPlayer {
	return &EmbeddedPlayer{}
}

func (p *EmbeddedPlayer) Name() string { return "embedded" }

func (p *EmbeddedPlayer) Start(loop bool) error {
	p.once.Do(func() {
		raw, err := base64.StdEncoding.DecodeString(embeddedChimeWAV)
		if err != nil {
			p.onceErr = fmt.Errorf("notify: decode embedded chime: %w", err)
			return
		}
		path := filepath.Join(os.TempDir(), "taskflow-chime.wav")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			p.onceErr = fmt.Errorf("notify: write embedded chime: %w", err)
			return
		}
		p.path = path
	})
	if p.onceErr != nil {
		return p.onceErr
	}
	bin, args, err := playbackCommand(p.path)
	if err != nil {
		return err
	}
	p.loop.start(bin, args, loop)
	return nil
}

func (p *EmbeddedPlayer) Stop() {
	p.loop.stop()
}

// BellPlayer is the last resort: the terminal bell, repeated every two
// seconds while looping.
type BellPlayer struct {
	mu     sync.Mutex
	stopCh chan struct{}
}

func NewBellPlayer() *BellPlayer {
	return &BellPlayer{}
}

func (p *BellPlayer) Name() string { return "bell" }

func (p *BellPlayer) Start(loop bool) error {
	fmt.Fprint(os.Stderr, "\a")
	if !loop {
		return nil
	}
	p.mu.Lock()
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fmt.Fprint(os.Stderr, "\a")
			}
		}
	}()
	return nil
}

func (p *BellPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopCh != nil {
		select {
		case <-p.stopCh:
		default:
			close(p.stopCh)
		}
		p.stopCh = nil
	}
}
