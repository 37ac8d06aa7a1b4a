package devices

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDevice struct {
	id       ID
	err      error
	started  int
	shutdown int
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	d.started++
	return d.err
}

func (d *testDevice) Shutdown() error {
	d.shutdown++
	return d.err
}

func TestID(t *testing.T) {
	id := NewID(Manufacturer, 0x0102)
	assert.Equal(t, Manufacturer, id.Manufacturer())
	assert.Equal(t, 0x0102, id.Serial())
	assert.Equal(t, "fffe:0102", id.String())
}

func TestMapConnect(t *testing.T) {
	var dm Map

	a := &testDevice{id: NewID(Manufacturer, 1)}
	b := &testDevice{id: NewID(Manufacturer, 2)}

	require.True(t, dm.Connect(a))
	require.True(t, dm.Connect(b))
	require.False(t, dm.Connect(&testDevice{id: a.id}))

	assert.Equal(t, 0, dm.Find(a.id))
	assert.Equal(t, 1, dm.Find(b.id))
	assert.Equal(t, -1, dm.Find(NewID(Manufacturer, 3)))
}

func TestMapLifecycle(t *testing.T) {
	var dm Map

	ok := &testDevice{id: NewID(Manufacturer, 1)}
	bad := &testDevice{id: NewID(Manufacturer, 2), err: errors.New("broken")}
	dm.Connect(ok)
	dm.Connect(bad)

	err := dm.Startup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fffe:0002: broken")
	assert.Equal(t, 1, ok.started)
	assert.Equal(t, 1, bad.started)

	set, isSet := err.(ErrorSet)
	require.True(t, isSet)
	assert.Equal(t, 1, set.Len())

	bad.err = nil
	require.NoError(t, dm.Shutdown())
	assert.Equal(t, 1, ok.shutdown)
	assert.Equal(t, 1, bad.shutdown)
}

func TestErrorSet(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	var set ErrorSet
	set.Append(errA, nil, errors.Wrap(errB, "context"))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "a; context: b", set.Error())
	assert.True(t, errors.Is(set, errA))
	assert.True(t, errors.Is(set, errB))
	assert.False(t, errors.Is(set, errors.New("a")))
}
