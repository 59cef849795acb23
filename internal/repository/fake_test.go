package repository

import (
	"context"
	"reflect"
)

// fakeDB implements DB with pluggable functions.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (int64, error)
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return f.QueryRowFunc(ctx, sql, args...)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
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

func rowFromValues(values ...any) Row {
	return &fakeRow{values: values}
}

func rowWithErr(err error) Row {
	return &fakeRow{err: err}
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	values := r.rows[r.idx-1]
	for i, d := range dest {
		if i >= len(values) {
			break
		}
		assign(d, values[i])
	}
	return nil
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return r.err }

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
