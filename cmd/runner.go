package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/tianhongw/attach/conf"
	"github.com/tianhongw/attach/pkg/log"
	"github.com/tianhongw/attach/pkg/message"
	"github.com/tianhongw/attach/pkg/util"
)

// runner applies one attachment codec strategy to raw message documents.
type runner interface {
	Name() string
	Types() []string
	Describe(w io.Writer, data []byte) (int, error)
	RoundTrip(data []byte) ([]byte, int, error)
}

type registryRunner struct {
	registry *message.Registry
}

func (r *registryRunner) Name() string { return conf.StrategyRegistry }

func (r *registryRunner) Types() []string { return r.registry.Types() }

func (r *registryRunner) Describe(w io.Writer, data []byte) (int, error) {
	msg, err := message.Unpack[message.Envelope](r.registry, data)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "%s says: '%s'\n", msg.From, msg.Text)

	for _, env := range msg.Attachments {
		switch p := env.Payload.(type) {
		case message.ImageAttachment:
			fmt.Fprintf(w, "found 'image' at %s with size %dx%d\n", p.URL, p.Width, p.Height)
		case message.AudioAttachment:
			fmt.Fprintf(w, "found 'audio' titled %q\n", p.Title)
		default:
			fmt.Fprintf(w, "unsupported attachment: %s\n", env.Type)
		}
	}

	return len(msg.Attachments), nil
}

func (r *registryRunner) RoundTrip(data []byte) ([]byte, int, error) {
	return roundTrip[message.Envelope](r.registry, data)
}

type variantRunner struct {
	codec message.VariantCodec
}

func (r *variantRunner) Name() string { return conf.StrategyVariant }

func (r *variantRunner) Types() []string { return r.codec.Types() }

func (r *variantRunner) Describe(w io.Writer, data []byte) (int, error) {
	msg, err := message.Unpack[message.Attachment](r.codec, data)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "%s says: '%s'\n", msg.From, msg.Text)

	for _, a := range msg.Attachments {
		switch a := a.(type) {
		case message.ImageAttachment:
			fmt.Fprintf(w, "found 'image' at %s with size %dx%d\n", a.URL, a.Width, a.Height)
		case message.AudioAttachment:
			fmt.Fprintf(w, "found 'audio' titled %q\n", a.Title)
		case message.Unsupported:
			fmt.Fprintln(w, "unsupported")
		}
	}

	return len(msg.Attachments), nil
}

func (r *variantRunner) RoundTrip(data []byte) ([]byte, int, error) {
	return roundTrip[message.Attachment](r.codec, data)
}

var errRoundTripMismatch = errors.New("re-decoded message differs from the original")

// roundTrip decodes data, encodes the result and decodes that again. It
// returns the indented re-encoded document.
func roundTrip[A any](c message.Codec[A], data []byte) ([]byte, int, error) {
	msg, err := message.Unpack(c, data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}

	packed, err := message.Pack(c, msg)
	if err != nil {
		return nil, 0, fmt.Errorf("encode: %w", err)
	}

	again, err := message.Unpack(c, packed)
	if err != nil {
		return nil, 0, fmt.Errorf("decode re-encoded message: %w", err)
	}

	if !reflect.DeepEqual(msg, again) {
		return nil, 0, errRoundTripMismatch
	}

	var out bytes.Buffer
	if err := json.Indent(&out, packed, "", "  "); err != nil {
		return nil, 0, err
	}
	out.WriteByte('\n')

	return out.Bytes(), len(msg.Attachments), nil
}

func newRunner(cfg *conf.Config, override string) (runner, error) {
	name := cfg.Codec.Strategy
	if override != "" {
		name = override
	}

	switch name {
	case conf.StrategyRegistry:
		r, err := conf.BuildRegistry(cfg.Codec)
		if err != nil {
			return nil, err
		}
		return &registryRunner{registry: r}, nil
	case conf.StrategyVariant:
		return &variantRunner{}, nil
	default:
		return nil, fmt.Errorf("unknown codec strategy: %s", name)
	}
}

func newLogger(cfg *conf.Config, prefix string) (log.Logger, error) {
	return log.NewLogger(cfg.Log.Type,
		log.WithLevel(cfg.Log.Level),
		log.WithFormat(cfg.Log.Format),
		log.WithOutputs(cfg.Log.Outputs...),
		log.WithPrefix(prefix))
}

type input struct {
	name string
	data []byte
}

// readInputs reads every named file, or stdin when there are none.
func readInputs(stdin io.Reader, paths []string) ([]input, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{name: "<stdin>", data: data}}, nil
	}

	inputs := make([]input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: p, data: data})
	}

	return inputs, nil
}

type result struct {
	out   bytes.Buffer
	count int
	err   error
}

// process runs f over every input concurrently against the same runner and
// writes the outputs in input order. The first failing input, in order,
// is returned.
func process(w io.Writer, lg log.Logger, r runner, inputs []input, f func(out *bytes.Buffer, data []byte) (int, error)) error {
	runID := util.NewRunID()
	results := make([]result, len(inputs))

	util.Each(len(inputs), func(i int) {
		results[i].count, results[i].err = f(&results[i].out, inputs[i].data)
	})

	for i, in := range inputs {
		res := &results[i]
		if res.err != nil {
			lg.Errorf("[%s] %s: %v", runID, in.name, res.err)
			return fmt.Errorf("%s: %w", in.name, res.err)
		}

		lg.Infof("[%s] %s: %d attachments with %s codec", runID, in.name, res.count, r.Name())

		if len(inputs) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", in.name)
		}
		if _, err := w.Write(res.out.Bytes()); err != nil {
			return err
		}
	}

	return nil
}
