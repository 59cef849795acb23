package services

import (
	"context"
	"reflect"

	"social-chat-backend/internal/repository"
)

// fakeDB implements repository.DB with pluggable functions.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) repository.Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (repository.Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (int64, error)
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) repository.Row {
	return f.QueryRowFunc(ctx, sql, args...)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (repository.Rows, error) {
	return f.QueryFunc(ctx, sql, args...)
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return f.ExecFunc(ctx, sql, args...)
}

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		assign(d, r.values[i])
	}
	return nil
}

func rowFromValues(values ...any) repository.Row {
	return &fakeRow{values: values}
}

func rowWithErr(err error) repository.Row {
	return &fakeRow{err: err}
}

func assign(dest, val any) {
	dv := reflect.ValueOf(dest).Elem()
	if val == nil {
		dv.Set(reflect.Zero(dv.Type()))
		return
	}
	v := reflect.ValueOf(val)
	switch {
	case v.Type().AssignableTo(dv.Type()):
		dv.Set(v)
	case v.Type().ConvertibleTo(dv.Type()):
		dv.Set(v.Convert(dv.Type()))
	}
}
