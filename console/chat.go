package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cake_admin/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const (
	DefaultAckTimeout      = 2 * time.Second
	DefaultRefreshInterval = 15 * time.Second
)

var (
	ErrNoConversation    = errors.New("no conversation is open")
	ErrReconcilerStopped = errors.New("chat reconciler already stopped")
)

// MessageStore là phần REST API tin nhắn mà ChatReconciler cần
type MessageStore interface {
	FetchMessages(ctx context.Context, userID string) ([]model.ChatMessage, error)
	FetchConversations(ctx context.Context) ([]model.ConversationSummary, error)
	PostMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error)
}

type ChatOptions struct {
	// AdminID là id phía admin trong hội thoại
	AdminID         string
	AckTimeout      time.Duration
	RefreshInterval time.Duration
	Logger          *log.Logger
}

// ChatReconciler gộp lịch sử tải về, tin đẩy realtime và tin gửi lạc quan
// thành một transcript không trùng lặp cho cuộc hội thoại đang mở.
type ChatReconciler struct {
	store   MessageStore
	channel Channel
	opts    ChatOptions
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	open          string
	generation    uint64
	transcript    []model.ChatMessage
	conversations []model.ConversationSummary
	scheduler     gocron.Scheduler
	stopped       bool
}

func NewChatReconciler(store MessageStore, channel Channel, opts ChatOptions) *ChatReconciler {
	if opts.AckTimeout <= 0 {
		opts.AckTimeout = DefaultAckTimeout
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatReconciler{
		store:   store,
		channel: channel,
		opts:    opts,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start đăng ký nhận tin realtime và chạy job làm mới danh sách hội thoại định kỳ
func (rc *ChatReconciler) Start() error {
	if rc.channel != nil {
		rc.channel.OnReceive(rc.OnReceive)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create conversation scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(rc.opts.RefreshInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(rc.ctx, rc.opts.RefreshInterval)
			defer cancel()
			_ = rc.RefreshConversations(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("schedule conversation refresh: %w", err)
	}

	rc.mu.Lock()
	if rc.stopped {
		rc.mu.Unlock()
		_ = s.Shutdown()
		return ErrReconcilerStopped
	}
	rc.scheduler = s
	rc.mu.Unlock()
	s.Start()
	return nil
}

// Stop dừng job định kỳ, chờ các lần làm mới đang chạy và đóng kênh realtime
func (rc *ChatReconciler) Stop() error {
	rc.mu.Lock()
	rc.stopped = true
	s := rc.scheduler
	rc.scheduler = nil
	rc.mu.Unlock()
	rc.cancel()

	var errs []error
	if s != nil {
		errs = append(errs, s.Shutdown())
	}
	rc.wg.Wait()
	if rc.channel != nil {
		errs = append(errs, rc.channel.Close())
	}
	return errors.Join(errs...)
}

func (rc *ChatReconciler) OpenConversation() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.open
}

func (rc *ChatReconciler) Transcript() []model.ChatMessage {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]model.ChatMessage, len(rc.transcript))
	copy(out, rc.transcript)
	return out
}

func (rc *ChatReconciler) Conversations() []model.ConversationSummary {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]model.ConversationSummary, len(rc.conversations))
	copy(out, rc.conversations)
	return out
}

// SelectConversation xóa transcript, tải lịch sử của customerID và chỉ áp dụng kết quả
// nếu trong lúc chờ admin chưa chuyển sang hội thoại khác.
func (rc *ChatReconciler) SelectConversation(ctx context.Context, customerID string) error {
	rc.mu.Lock()
	rc.open = customerID
	rc.generation++
	gen := rc.generation
	rc.transcript = nil
	rc.mu.Unlock()

	msgs, err := rc.store.FetchMessages(ctx, customerID)
	if err != nil {
		rc.opts.Logger.Printf("Lỗi tải tin nhắn của %s: %v", customerID, err)
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.generation != gen {
		rc.opts.Logger.Printf("Bỏ kết quả tải tin nhắn cũ của %s", customerID)
		return nil
	}

	// giữ lại tin đẩy tới trong lúc đang tải mà kết quả chưa có
	arrived := rc.transcript
	rc.transcript = make([]model.ChatMessage, 0, len(msgs)+len(arrived))
	for _, m := range msgs {
		rc.reconcileLocked(m)
	}
	for _, m := range arrived {
		rc.reconcileLocked(m)
	}
	return nil
}

// OnReceive xử lý một tin đẩy realtime
func (rc *ChatReconciler) OnReceive(msg model.ChatMessage) {
	rc.mu.Lock()
	if msg.Involves(rc.open) {
		rc.reconcileLocked(msg)
	}
	rc.mu.Unlock()

	rc.refreshConversationsAsync()
}

// Send chèn bản tạm ngay rồi gửi qua kênh realtime (hoặc POST nếu kênh không sẵn sàng).
// Hết thời gian chờ ack thì tải lại lịch sử từ server.
func (rc *ChatReconciler) Send(ctx context.Context, text string) error {
	rc.mu.Lock()
	open, gen := rc.open, rc.generation
	if open == "" {
		rc.mu.Unlock()
		return ErrNoConversation
	}
	provisional := model.ChatMessage{
		ClientID:   uuid.NewString(),
		SenderID:   rc.opts.AdminID,
		ReceiverID: open,
		Message:    text,
		Timestamp:  rc.now(),
	}
	if err := provisional.Validate(); err != nil {
		rc.mu.Unlock()
		return err
	}
	rc.transcript = append(rc.transcript, provisional)
	rc.mu.Unlock()

	if rc.channel != nil && rc.channel.Connected() {
		ackCtx, cancel := context.WithTimeout(ctx, rc.opts.AckTimeout)
		ack, err := rc.channel.Emit(ackCtx, provisional)
		cancel()

		switch {
		case err == nil:
			rc.acceptOwn(gen, provisional.ClientID, ack)
			return nil
		case errors.Is(err, ErrAckTimeout):
			rc.opts.Logger.Printf("Không nhận được ack sau %s, tải lại tin nhắn của %s", rc.opts.AckTimeout, open)
			_ = rc.refetch(ctx, open, gen)
			return nil
		case errors.Is(err, ErrNotConnected):
			// kênh vừa rớt, gửi qua REST
		default:
			rc.opts.Logger.Printf("Gửi tin nhắn cho %s thất bại: %v", open, err)
			return err
		}
	}

	saved, err := rc.store.PostMessage(ctx, provisional)
	if err != nil {
		rc.opts.Logger.Printf("Gửi tin nhắn cho %s thất bại: %v", open, err)
		return err
	}
	rc.acceptOwn(gen, provisional.ClientID, saved)
	return nil
}

// RefreshConversations thay toàn bộ danh sách hội thoại; lỗi thì giữ danh sách cũ
func (rc *ChatReconciler) RefreshConversations(ctx context.Context) error {
	list, err := rc.store.FetchConversations(ctx)
	if err != nil {
		rc.opts.Logger.Printf("Lỗi tải danh sách hội thoại: %v", err)
		return err
	}
	rc.mu.Lock()
	rc.conversations = list
	rc.mu.Unlock()
	return nil
}

func (rc *ChatReconciler) refreshConversationsAsync() {
	// Add phải xảy ra trước khi Stop gọi wg.Wait
	rc.mu.Lock()
	if rc.stopped {
		rc.mu.Unlock()
		return
	}
	rc.wg.Add(1)
	rc.mu.Unlock()

	go func() {
		defer rc.wg.Done()
		ctx, cancel := context.WithTimeout(rc.ctx, rc.opts.RefreshInterval)
		defer cancel()
		_ = rc.RefreshConversations(ctx)
	}()
}

// refetch tải lại lịch sử và thay transcript, kết quả coi là chuẩn
func (rc *ChatReconciler) refetch(ctx context.Context, customerID string, gen uint64) error {
	msgs, err := rc.store.FetchMessages(ctx, customerID)
	if err != nil {
		rc.opts.Logger.Printf("Lỗi tải lại tin nhắn của %s: %v", customerID, err)
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.generation != gen {
		return nil
	}
	// tin đẩy tới trong lúc tải vẫn được giữ; bản tạm thì nhường cho dữ liệu server
	arrived := rc.transcript
	rc.transcript = make([]model.ChatMessage, 0, len(msgs)+len(arrived))
	for _, m := range msgs {
		rc.reconcileLocked(m)
	}
	for _, m := range arrived {
		if m.ID != "" {
			rc.reconcileLocked(m)
		}
	}
	return nil
}

func (rc *ChatReconciler) acceptOwn(gen uint64, clientID string, msg model.ChatMessage) {
	if msg.ClientID == "" {
		msg.ClientID = clientID
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.generation != gen {
		return
	}
	rc.reconcileLocked(msg)
}

// reconcileLocked giữ mỗi id một lần và mỗi ClientID một bản:
// bản đã xác nhận thay bản tạm, bản tạm đến sau bản đã xác nhận thì bị bỏ.
func (rc *ChatReconciler) reconcileLocked(msg model.ChatMessage) {
	if msg.ID == "" {
		if msg.ClientID != "" && rc.indexLocked(func(m model.ChatMessage) bool {
			return m.ID != "" && m.ClientID == msg.ClientID
		}) >= 0 {
			return
		}
		rc.transcript = append(rc.transcript, msg)
		return
	}

	provisional := -1
	if msg.ClientID != "" {
		provisional = rc.indexLocked(func(m model.ChatMessage) bool {
			return m.ID == "" && m.ClientID == msg.ClientID
		})
	}

	if rc.indexLocked(func(m model.ChatMessage) bool { return m.ID == msg.ID }) >= 0 {
		if provisional >= 0 {
			rc.transcript = append(rc.transcript[:provisional], rc.transcript[provisional+1:]...)
		}
		return
	}
	if provisional >= 0 {
		rc.transcript[provisional] = msg
		return
	}
	rc.transcript = append(rc.transcript, msg)
}

func (rc *ChatReconciler) indexLocked(match func(model.ChatMessage) bool) int {
	for i := range rc.transcript {
		if match(rc.transcript[i]) {
			return i
		}
	}
	return -1
}
