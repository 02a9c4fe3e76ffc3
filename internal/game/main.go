package game

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"chickenescape/internal/config"
	"chickenescape/internal/session"
	"chickenescape/internal/sim"
	"chickenescape/pkg/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop opens the game window and runs the frame loop until the window
// closes or ctx is cancelled. It must be called from the main goroutine.
func RunDesktop(ctx context.Context, cfg config.Config, pub sim.Publisher) error {
	runtime.LockOSThread()
	log := logger.Component("desktop")

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	audio, err := NewAudio(cfg.Mute)
	if err != nil {
		log.WithError(err).Warn("audio init failed, continuing without sound")
	}
	defer audio.Close()

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitAtlas(LoadSprites(cfg.Assets)); err != nil {
		return fmt.Errorf("atlas: %w", err)
	}

	sess := session.New(cfg, pub)
	cam := CameraFor(sess.Mode())
	seed := cfg.WorldSeed()

	sess.Subscribe(sim.EventJump, func(sim.Event) { audio.Play(SoundJump) })
	sess.Subscribe(sim.EventHit, func(sim.Event) {
		audio.Play(SoundHurt)
		cam.AddShake(HitShake, HitShakeDuration)
	})
	sess.Subscribe(sim.EventFire, func(sim.Event) { audio.Play(SoundShot) })
	sess.Subscribe(sim.EventBossHit, func(sim.Event) {
		audio.Play(SoundBossHit)
		cam.AddShake(BossShake, BossShakeTime)
	})
	sess.Subscribe(sim.EventVolley, func(sim.Event) { audio.Play(SoundVolley) })
	sess.Subscribe(sim.EventPhase, func(e sim.Event) {
		switch sim.Phase(e.Data) {
		case sim.PhasePlaying:
			audio.Play(SoundStart)
			audio.StartMusic(seed)
		case sim.PhaseGameOver:
			audio.Play(SoundGameOver)
			audio.StopMusic()
		case sim.PhaseGameWon:
			audio.Play(SoundWin)
			audio.StopMusic()
		}
	})

	in := NewInput(sess)
	in.Attach(window)

	var scene Scene
	start := time.Now()
	var frame uint64
	log.WithField("mode", sess.Mode().String()).Info("desktop started")

	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		glfw.PollEvents()
		if in.TakeSwitched() {
			audio.StopMusic()
			cam = CameraFor(sess.Mode())
		}

		dt := sess.Frame()
		frame++
		cam.UpdateShake(dt.Seconds(), seed+frame)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimised: keep simulating, skip drawing.
			time.Sleep(16 * time.Millisecond)
			continue
		}
		w := sess.World
		BuildScene(&scene, w, &cam, fbW, fbH, time.Since(start).Seconds())

		rend.BeginFrame(fbW, fbH, Palette.SkyTop)
		rend.DrawScene(&scene, fbW, fbH, float32(cam.ShakeX), float32(cam.ShakeY))
		RenderHUD(rend, w, fbW, fbH)

		window.SwapBuffers()
	}
	return nil
}
