// Package loop wires a local terminal session: a private session host plus
// one terminal client reading from the given reader.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/chaos-survival/internal/draw"
	"github.com/tomz197/chaos-survival/internal/loop/client"
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/loop/server"
)

// Options configures a local run.
type Options struct {
	Username     string
	Tuning       config.Tuning     // Default tuning if zero
	Logger       *log.Logger       // Discarded if nil
	TermSizeFunc draw.TermSizeFunc // Size of the local terminal if nil
	Rand         *rand.Rand
}

// Run plays on the local terminal until the player quits.
// The leaderboard lives for the duration of the call.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host := server.NewServer(server.Options{Logger: opts.Logger})
	go host.Run(ctx)

	c := client.NewClient(host, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Tuning:       opts.Tuning,
		Logger:       opts.Logger,
		Rand:         opts.Rand,
	})
	return c.Run()
}
