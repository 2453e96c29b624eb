package sqslisten

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// --- test helpers ---

type receiveReply struct {
	out *sqs.ReceiveMessageOutput
	err error
}

// fakeSQS serves scripted replies first, then repeats `every`
// (an empty result when unset).
type fakeSQS struct {
	mu       sync.Mutex
	script   []receiveReply
	every    receiveReply
	receives int
	deletes  []*sqs.DeleteMessageInput
}

func (f *fakeSQS) ReceiveMessage(_ *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receives++
	if len(f.script) > 0 {
		reply := f.script[0]
		f.script = f.script[1:]
		return reply.out, reply.err
	}
	if f.every.out != nil || f.every.err != nil {
		return f.every.out, f.every.err
	}
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, input)
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) receiveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receives
}

func (f *fakeSQS) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}

type handlerCall struct {
	msgID string
	err   error
}

type spyHandler struct {
	mu     sync.Mutex
	calls  []handlerCall
	result error
}

func (s *spyHandler) handle(msg *sqs.Message, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := handlerCall{err: err}
	if msg != nil {
		call.msgID = aws.StringValue(msg.MessageId)
	}
	s.calls = append(s.calls, call)
	return s.result
}

func (s *spyHandler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *spyHandler) call(i int) handlerCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func testInput() *sqs.ReceiveMessageInput {
	return &sqs.ReceiveMessageInput{
		QueueUrl: aws.String("https://queue.test/q"),
	}
}

// --- tests ---

func TestListenDispatchesMessagesInOrder(t *testing.T) {
	fake := &fakeSQS{
		script: []receiveReply{{
			out: &sqs.ReceiveMessageOutput{
				Messages: []*sqs.Message{
					{
						MessageId:     aws.String("msg-1"),
						Body:          aws.String("first"),
						ReceiptHandle: aws.String("r1"),
					},
					{
						MessageId: aws.String("msg-2"),
						Body:      aws.String("second"),
						// no receipt handle: must be skipped by the ack step
					},
				},
			},
		}},
	}
	handler := &spyHandler{}

	listener := NewWithClient(fake)
	handle := listener.Listen(testInput(), handler.handle)
	if got := fake.receiveCount(); got != 0 {
		t.Fatalf("Listen must return before the first poll, got %d receives", got)
	}
	waitFor(t, 3*time.Second, func() bool { return handler.count() >= 2 })
	handle.Stop()

	if got := handler.call(0); got.msgID != "msg-1" || got.err != nil {
		t.Errorf("first call = %+v, want msg-1 with nil error", got)
	}
	if got := handler.call(1); got.msgID != "msg-2" || got.err != nil {
		t.Errorf("second call = %+v, want msg-2 with nil error", got)
	}
	if got := fake.deleteCount(); got != 1 {
		t.Fatalf("delete count = %d, want 1 (msg-2 has no receipt handle)", got)
	}
	del := fake.deletes[0]
	if aws.StringValue(del.ReceiptHandle) != "r1" {
		t.Errorf("deleted receipt = %q, want %q", aws.StringValue(del.ReceiptHandle), "r1")
	}
	if aws.StringValue(del.QueueUrl) != "https://queue.test/q" {
		t.Errorf("delete queue url = %q", aws.StringValue(del.QueueUrl))
	}
}

func TestListenReportsReceiveErrorsAndKeepsPolling(t *testing.T) {
	recvErr := errors.New("receive failed")
	fake := &fakeSQS{every: receiveReply{err: recvErr}}
	handler := &spyHandler{}

	listener := NewWithClient(fake)
	handle := listener.Listen(testInput(), handler.handle)
	// two ticks prove the loop survives a failed poll
	waitFor(t, 4*time.Second, func() bool { return handler.count() >= 2 })
	handle.Stop()

	for i := 0; i < 2; i++ {
		call := handler.call(i)
		if call.msgID != "" {
			t.Errorf("call %d carried message %q, want none", i, call.msgID)
		}
		if call.err == nil {
			t.Errorf("call %d carried no error", i)
		}
	}
	if got := fake.deleteCount(); got != 0 {
		t.Errorf("delete count = %d, want 0 on failed polls", got)
	}
}

func TestHandlerErrorDoesNotBlockAck(t *testing.T) {
	fake := &fakeSQS{every: receiveReply{
		out: &sqs.ReceiveMessageOutput{
			Messages: []*sqs.Message{{
				MessageId:     aws.String("msg-1"),
				ReceiptHandle: aws.String("r1"),
			}},
		},
	}}
	handler := &spyHandler{result: errors.New("handler failed")}

	listener := NewWithClient(fake)
	handle := listener.Listen(testInput(), handler.handle)
	// two deletes prove both acknowledgment and the next tick survive
	// a failing handler
	waitFor(t, 4*time.Second, func() bool { return fake.deleteCount() >= 2 })
	handle.Stop()
}

func TestStopHaltsPolling(t *testing.T) {
	fake := &fakeSQS{}
	handler := &spyHandler{}

	listener := NewWithClient(fake)
	handle := listener.Listen(testInput(), handler.handle)
	waitFor(t, 3*time.Second, func() bool { return fake.receiveCount() >= 1 })
	handle.Stop()

	seen := fake.receiveCount()
	time.Sleep(2500 * time.Millisecond)
	if got := fake.receiveCount(); got != seen {
		t.Fatalf("receive count grew from %d to %d after Stop", seen, got)
	}
}

func TestIndependentListenersDoNotShareState(t *testing.T) {
	fakeA := &fakeSQS{}
	fakeB := &fakeSQS{}
	handler := &spyHandler{}

	handleA := NewWithClient(fakeA).Listen(testInput(), handler.handle)
	inputB := &sqs.ReceiveMessageInput{QueueUrl: aws.String("https://queue.test/other")}
	handleB := NewWithClient(fakeB).Listen(inputB, handler.handle)

	waitFor(t, 3*time.Second, func() bool {
		return fakeA.receiveCount() >= 1 && fakeB.receiveCount() >= 1
	})
	handleA.Stop()
	waitFor(t, 3*time.Second, func() bool { return fakeB.receiveCount() >= 2 })
	handleB.Stop()
}
