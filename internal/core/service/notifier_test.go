package service

import "testing"

func TestNotifier_OrderAndUnsubscribe(t *testing.T) {
	var n notifier[int]
	var got []string

	unsubA := n.subscribe(func(v int) { got = append(got, "a") })
	n.subscribe(func(v int) { got = append(got, "b") })

	n.notify(1)
	unsubA()
	unsubA()
	n.notify(2)

	want := []string{"a", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNotifier_ListenerMaySubscribeDuringNotify(t *testing.T) {
	var n notifier[int]
	calls := 0
	n.subscribe(func(int) {
		calls++
		n.subscribe(func(int) { calls++ })
	})

	n.notify(1)
	if calls != 1 {
		t.Fatalf("listener added during notify must not run in the same round, calls=%d", calls)
	}
	n.notify(2)
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestNotifier_Clear(t *testing.T) {
	var n notifier[string]
	called := false
	n.subscribe(func(string) { called = true })
	n.clear()
	n.notify("x")
	if called {
		t.Fatal("listener called after clear")
	}
}
