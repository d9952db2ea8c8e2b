/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/refresh-bio/CoMSA/queue"
	"github.com/refresh-bio/CoMSA/transform"
)

// secondStageWorkers is 2 for MTF (cheap) and 4 for WFC (more expensive per
// column), per SPEC_FULL.md's concurrency model.
func secondStageWorkers(fast bool) int {
	if fast {
		return 2
	}
	return 4
}

type taggedColumn struct {
	idx  int
	data []byte
}

func newSecondStage(fast bool) columnTransform {
	if fast {
		return transform.NewMTF()
	}
	return transform.NewWFC()
}

// columnTransform is satisfied by both *transform.MTF and *transform.WFC.
type columnTransform interface {
	Forward(col []byte) ([]byte, error)
	Inverse(col []byte) ([]byte, error)
}

// encodeSequence runs T -> P -> S -> R over one alignment's row-major
// matrix, fanning the second stage out across secondStageWorkers(fast)
// goroutines, and returns the RLE-0 stream ready for entropy coding.
func encodeSequence(rows [][]byte, fast bool) ([]byte, error) {
	n := len(rows)
	l := 0
	if n > 0 {
		l = len(rows[0])
	}

	transposedQ := queue.New[taggedColumn](1)
	rankedQ := queue.New[taggedColumn](1)

	nWorkers := secondStageWorkers(fast)
	secondQ := queue.New[taggedColumn](nWorkers)

	var g errgroup.Group

	g.Go(func() error {
		defer transposedQ.MarkCompleted()
		return transform.TransposeForward(rows, func(priority uint64, col []byte) error {
			cp := append([]byte(nil), col...)
			transposedQ.Push(priority, taggedColumn{idx: int(priority), data: cp})
			return nil
		})
	})

	g.Go(func() error {
		defer rankedQ.MarkCompleted()
		p := transform.NewPBWT(n)
		for {
			c, ok := transposedQ.Pop()
			if !ok {
				return nil
			}
			out, err := p.Forward(c.data)
			if err != nil {
				return fmt.Errorf("engine: pbwt forward column %d: %w", c.idx, err)
			}
			rankedQ.Push(uint64(c.idx), taggedColumn{idx: c.idx, data: out})
		}
	})

	for w := 0; w < nWorkers; w++ {
		g.Go(func() error {
			defer secondQ.MarkCompleted()
			for {
				c, ok := rankedQ.Pop()
				if !ok {
					return nil
				}
				s := newSecondStage(fast)
				out, err := s.Forward(c.data)
				if err != nil {
					return fmt.Errorf("engine: second-stage forward column %d: %w", c.idx, err)
				}
				secondQ.Push(uint64(c.idx), taggedColumn{idx: c.idx, data: out})
			}
		})
	}

	flat := make([]byte, l*n)
	g.Go(func() error {
		for i := 0; i < l; i++ {
			c, ok := secondQ.Pop()
			if !ok {
				return fmt.Errorf("engine: second-stage queue closed early at column %d of %d", i, l)
			}
			copy(flat[c.idx*n:(c.idx+1)*n], c.data)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return transform.RLEForward(flat), nil
}

// decodeSequence is the mirror of encodeSequence: it inverts R, fans the
// second stage back out, sequentially inverts P (stateful across columns),
// then inverts T to recover the row-major matrix.
func decodeSequence(rleBytes []byte, n, l int, fast bool) ([][]byte, error) {
	flat, err := transform.RLEInverse(rleBytes)
	if err != nil {
		return nil, fmt.Errorf("engine: rle-0 inverse: %w", err)
	}
	if len(flat) != n*l {
		return nil, fmt.Errorf("engine: rle-0 inverse produced %d bytes, want %d (%dx%d)", len(flat), n*l, n, l)
	}

	rankedQ := queue.New[taggedColumn](1)
	pbwtInQ := queue.New[taggedColumn](secondStageWorkers(fast))

	var g errgroup.Group

	g.Go(func() error {
		defer rankedQ.MarkCompleted()
		for i := 0; i < l; i++ {
			col := append([]byte(nil), flat[i*n:(i+1)*n]...)
			rankedQ.Push(uint64(i), taggedColumn{idx: i, data: col})
		}
		return nil
	})

	nWorkers := secondStageWorkers(fast)
	for w := 0; w < nWorkers; w++ {
		g.Go(func() error {
			defer pbwtInQ.MarkCompleted()
			for {
				c, ok := rankedQ.Pop()
				if !ok {
					return nil
				}
				s := newSecondStage(fast)
				out, err := s.Inverse(c.data)
				if err != nil {
					return fmt.Errorf("engine: second-stage inverse column %d: %w", c.idx, err)
				}
				pbwtInQ.Push(uint64(c.idx), taggedColumn{idx: c.idx, data: out})
			}
		})
	}

	columns := make([][]byte, l)
	g.Go(func() error {
		p := transform.NewPBWT(n)
		for i := 0; i < l; i++ {
			c, ok := pbwtInQ.Pop()
			if !ok {
				return fmt.Errorf("engine: pbwt-input queue closed early at column %d of %d", i, l)
			}
			out, err := p.Inverse(c.data)
			if err != nil {
				return fmt.Errorf("engine: pbwt inverse column %d: %w", c.idx, err)
			}
			columns[c.idx] = out
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := 0
	return transform.TransposeInverse(n, l, func() ([]byte, bool, error) {
		if idx >= l {
			return nil, false, nil
		}
		c := columns[idx]
		idx++
		return c, true, nil
	})
}
