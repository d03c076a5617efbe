package project

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func identityHash(id string) [32]byte {
	var h [32]byte
	copy(h[:], id)
	return h
}

func TestBuildCompilesEachContractOnce(t *testing.T) {
	var calls int32
	p := New(func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error) {
		atomic.AddInt32(&calls, 1)
		return &Artifact{Identifier: id, Hash: identityHash(id)}, nil
	}, nil)
	p.AddSource("A", Source{Content: "object \"A\" {}"})
	p.AddSource("B", Source{Content: "object \"B\" {}"})
	p.AddSource("C", Source{Content: "object \"C\" {}"})

	artifacts, err := p.Build(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestBuildSharedDependencyCompiledOnce(t *testing.T) {
	var bCalls int32
	p := New(func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error) {
		if id == "B" {
			atomic.AddInt32(&bCalls, 1)
		}
		if id == "A" || id == "C" {
			if _, err := resolve(ctx, "B"); err != nil {
				return nil, err
			}
		}
		return &Artifact{Identifier: id, Hash: identityHash(id)}, nil
	}, nil)
	p.AddSource("A", Source{})
	p.AddSource("B", Source{})
	p.AddSource("C", Source{})

	artifacts, err := p.Build(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	require.EqualValues(t, 1, atomic.LoadInt32(&bCalls))
}

func TestBuildCyclicDependency(t *testing.T) {
	p := New(func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error) {
		other := map[string]string{"A": "B", "B": "A"}[id]
		if _, err := resolve(ctx, other); err != nil {
			return nil, err
		}
		return &Artifact{Identifier: id}, nil
	}, nil)
	p.AddSource("A", Source{})
	p.AddSource("B", Source{})

	_, err := p.Build(context.Background(), 2)
	require.Error(t, err)
	var cyclic *CyclicDependencyError
	var sub *SubcompileError
	require.True(t, errors.As(err, &cyclic) || errors.As(err, &sub))
}

func TestBuildPropagatesFailure(t *testing.T) {
	wantErr := errors.New("boom")
	p := New(func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error) {
		if id == "Bad" {
			return nil, wantErr
		}
		return &Artifact{Identifier: id}, nil
	}, nil)
	p.AddSource("Bad", Source{})

	_, err := p.Build(context.Background(), 1)
	require.ErrorIs(t, err, wantErr)
}

func TestResolveUnknownContract(t *testing.T) {
	p := New(func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error) {
		return nil, nil
	}, nil)
	_, err := p.resolve(context.Background(), "Missing", nil)
	require.ErrorIs(t, err, ErrNotFound)
}
