package console

import (
	"context"
	"io"
	"log"
	"sync"

	"cake_admin/model"
)

var quietLogger = log.New(io.Discard, "", 0)

type fakeBillStore struct {
	mu      sync.Mutex
	bills   []model.Bill
	updates []model.UpdateBillStatusInput
	deleted []string
	lists   int

	updateErr error
	listErr   error
}

func (f *fakeBillStore) ListBills(ctx context.Context) ([]model.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Bill, len(f.bills))
	copy(out, f.bills)
	return out, nil
}

func (f *fakeBillStore) UpdateBillStatus(ctx context.Context, id string, status model.BillStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, model.UpdateBillStatusInput{Status: string(status)})
	for i := range f.bills {
		if f.bills[i].ID == id {
			f.bills[i].Status = status
		}
	}
	return nil
}

func (f *fakeBillStore) DeleteBill(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.bills[:0]
	for _, b := range f.bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	f.bills = kept
	return nil
}

// fetchResult cho phép test điều khiển thời điểm một lần tải lịch sử trả về
type fetchResult struct {
	msgs []model.ChatMessage
	err  error
}

type fakeMessageStore struct {
	mu            sync.Mutex
	history       map[string][]model.ChatMessage
	gates         map[string]chan fetchResult
	conversations []model.ConversationSummary
	convErr       error
	convCalls     int
	fetchCalls    map[string]int
	posted        []model.ChatMessage
	postErr       error
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{
		history:    map[string][]model.ChatMessage{},
		gates:      map[string]chan fetchResult{},
		fetchCalls: map[string]int{},
	}
}

func (f *fakeMessageStore) FetchMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	f.mu.Lock()
	f.fetchCalls[userID]++
	gate := f.gates[userID]
	msgs := append([]model.ChatMessage(nil), f.history[userID]...)
	f.mu.Unlock()

	if gate != nil {
		select {
		case r := <-gate:
			return r.msgs, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return msgs, nil
}

func (f *fakeMessageStore) FetchConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convCalls++
	if f.convErr != nil {
		return nil, f.convErr
	}
	return append([]model.ConversationSummary(nil), f.conversations...), nil
}

func (f *fakeMessageStore) PostMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return model.ChatMessage{}, f.postErr
	}
	msg.ID = "posted-" + msg.ClientID
	f.posted = append(f.posted, msg)
	return msg, nil
}

func (f *fakeMessageStore) calls(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls[userID]
}

func (f *fakeMessageStore) conversationCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.convCalls
}

type fakeChannel struct {
	mu        sync.Mutex
	connected bool
	emitted   []model.ChatMessage
	handler   func(model.ChatMessage)
	closed    bool

	// ack trả về bản đã xác nhận; nil nghĩa là không bao giờ ack
	ack     func(model.ChatMessage) model.ChatMessage
	emitErr error
}

func (f *fakeChannel) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeChannel) Emit(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	f.mu.Lock()
	f.emitted = append(f.emitted, msg)
	ack, emitErr := f.ack, f.emitErr
	f.mu.Unlock()

	if emitErr != nil {
		return model.ChatMessage{}, emitErr
	}
	if ack == nil {
		<-ctx.Done()
		return model.ChatMessage{}, ErrAckTimeout
	}
	return ack(msg), nil
}

func (f *fakeChannel) OnReceive(fn func(model.ChatMessage)) {
	f.mu.Lock()
	f.handler = fn
	f.mu.Unlock()
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) push(msg model.ChatMessage) {
	f.mu.Lock()
	fn := f.handler
	f.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (f *fakeChannel) emittedMessages() []model.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ChatMessage(nil), f.emitted...)
}
