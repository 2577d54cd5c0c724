package sweep

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
)

// RunActor owns one engine. Asking it with an empty message runs the
// engine to completion and replies with the summary as a structpb.Struct.
type RunActor struct {
	run    Run
	engine *swarm.Engine
}

var _ actor.Actor = (*RunActor)(nil)

func NewRunActor(run Run) *RunActor {
	return &RunActor{run: run}
}

func (r *RunActor) PreStart(ctx *actor.Context) error {
	engine, err := swarm.New(r.run.Config, swarm.WithLogger(ctx.ActorSystem().Logger()))
	if err != nil {
		return fmt.Errorf("run %d: %w", r.run.Iteration, err)
	}
	r.engine = engine
	return nil
}

func (r *RunActor) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.ActorSystem().Logger().Debugf("%s ready: inertia=%.3f cognition=%.3f social=%.3f seed=%d",
			ctx.Self().Name(), r.run.Config.Inertia, r.run.Config.Cognition, r.run.Config.Social, r.run.Config.Seed)

	case *emptypb.Empty:
		s, err := r.engine.Run(ctx.Context())
		if err != nil {
			ctx.Err(fmt.Errorf("run %d: %w", r.run.Iteration, err))
			return
		}
		reply, err := summaryToStruct(s)
		if err != nil {
			ctx.Err(err)
			return
		}
		ctx.Response(reply)

	default:
		ctx.Unhandled()
	}
}

func (r *RunActor) PostStop(ctx *actor.Context) error {
	if r.engine == nil {
		return nil
	}
	ctx.ActorSystem().Logger().Debugf("run %d actor stopped after %d steps", r.run.Iteration, r.engine.Steps())
	return nil
}
