package domain

import (
	"reflect"
	"testing"
	"time"
)

const netstatOutput = `Name       Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
lo0        16384 <Link#1>                        1000     0     200000     1000     0     200000     0
lo0        16384 127           127.0.0.1         1000     -     200000     1000     -     200000     -
en0        1500  <Link#4>      3c:22:fb:00:00:01 5000     0    1048576     4000     0     524288     0
en0        1500  192.168.1     192.168.1.20      5000     -    9999999     4000     -    9999999     -
utun0      1380  <Link#10>     broken            10       0        abc       10     0          0     0
utun0      1380  fe80::%utun0  fe80::aaaa        10       -        100       10     -         50     -
`

func TestParseInterfaceCounters(t *testing.T) {
	got := ParseInterfaceCounters(netstatOutput)
	want := map[string]Counters{
		"en0":   {In: 1048576, Out: 524288},
		"utun0": {In: 100, Out: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseInterfaceCounters() = %v, want %v", got, want)
	}
}

func TestBandwidthState_FirstSampleYieldsNothing(t *testing.T) {
	var s BandwidthState
	t0 := time.Unix(1000, 0)

	if _, ok := s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {100, 50}}}); ok {
		t.Fatal("first sample must not produce rates")
	}
	if prev, ok := s.Previous(); !ok || !prev.Timestamp.Equal(t0) {
		t.Error("first sample must be stored")
	}
}

func TestBandwidthState_Rate(t *testing.T) {
	var s BandwidthState
	t0 := time.Unix(1000, 0)

	s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {In: 100, Out: 50}}})
	v, ok := s.Observe(CounterSample{
		Timestamp: t0.Add(1000 * time.Millisecond),
		Counters:  map[string]Counters{"en0": {In: 1100, Out: 50}},
	})
	if !ok {
		t.Fatal("expected a rate on the second sample")
	}
	if got, _ := v.Get("en0"); got != "IN: 1000Bps / OUT: 0.00Bps" {
		t.Errorf("en0 = %q", got)
	}
}

func TestBandwidthState_SortedIdleAndVanishedInterfaces(t *testing.T) {
	var s BandwidthState
	t0 := time.Unix(1000, 0)

	s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{
		"en1":  {In: 0, Out: 0},
		"en0":  {In: 0, Out: 0},
		"idle": {In: 10, Out: 10},
		"gone": {In: 500, Out: 500},
	}})
	v, ok := s.Observe(CounterSample{Timestamp: t0.Add(2 * time.Second), Counters: map[string]Counters{
		"en1":  {In: 4096, Out: 0},
		"en0":  {In: 0, Out: 2048 * 1024},
		"idle": {In: 10, Out: 10},
		"new":  {In: 1 << 30, Out: 1 << 30},
	}})
	if !ok {
		t.Fatal("expected rates")
	}

	want := map[string]string{
		"en0": "IN: 0.00Bps / OUT: 1.00MBps",
		"en1": "IN: 2.00kBps / OUT: 0.00Bps",
	}
	if !reflect.DeepEqual(v.Mapping, want) {
		t.Errorf("Mapping = %v, want %v", v.Mapping, want)
	}
	if !reflect.DeepEqual(v.Keys, []string{"en0", "en1"}) {
		t.Errorf("Keys = %v, expected sorted interface names", v.Keys)
	}
}

func TestBandwidthState_TimeMustMoveForward(t *testing.T) {
	var s BandwidthState
	t0 := time.Unix(1000, 0)

	s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {In: 0}}})
	if _, ok := s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {In: 100}}}); ok {
		t.Error("equal timestamps must skip the rate")
	}
	if _, ok := s.Observe(CounterSample{Timestamp: t0.Add(-time.Second), Counters: map[string]Counters{"en0": {In: 200}}}); ok {
		t.Error("a timestamp going backwards must skip the rate")
	}

	// the skipped samples still replaced the stored one
	v, ok := s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {In: 1224}}})
	if !ok {
		t.Fatal("expected a rate once time moves forward again")
	}
	if got, _ := v.Get("en0"); got != "IN: 1.00kBps / OUT: 0.00Bps" {
		t.Errorf("en0 = %q", got)
	}
}

func TestBandwidthState_CounterResetIsNotNegative(t *testing.T) {
	var s BandwidthState
	t0 := time.Unix(1000, 0)

	s.Observe(CounterSample{Timestamp: t0, Counters: map[string]Counters{"en0": {In: 5000, Out: 5000}}})
	v, ok := s.Observe(CounterSample{Timestamp: t0.Add(time.Second), Counters: map[string]Counters{"en0": {In: 10, Out: 10}}})
	if !ok {
		t.Fatal("expected a computed (empty) mapping")
	}
	if len(v.Mapping) != 0 {
		t.Errorf("reset counters must not produce rows, got %v", v.Mapping)
	}
}
