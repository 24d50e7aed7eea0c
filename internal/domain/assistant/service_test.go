package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
	"github.com/svr1m/PawCare-App/internal/domain/pets"
	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

// -------------------------
// Fakes
// -------------------------

type fakePets struct {
	byOwner map[string]pets.Pet
	err     error
}

func (f *fakePets) FirstByOwner(ctx context.Context, ownerUserID string) (pets.Pet, bool, error) {
	if f.err != nil {
		return pets.Pet{}, false, f.err
	}
	p, ok := f.byOwner[ownerUserID]
	return p, ok, nil
}

type fakeChat struct {
	reply string
	err   error
	calls []inference.ChatRequest
}

func (f *fakeChat) CompleteChat(ctx context.Context, req inference.ChatRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

type fakeClassifier struct {
	preds []inference.Prediction
	err   error
	got   []byte
}

func (f *fakeClassifier) ClassifyImage(ctx context.Context, image []byte) ([]inference.Prediction, error) {
	f.got = image
	return f.preds, f.err
}

type fakeTipsCache struct {
	items  map[string]breedtips.BreedTip
	getErr error
	putErr error
	puts   int
}

func newFakeTipsCache() *fakeTipsCache {
	return &fakeTipsCache{items: map[string]breedtips.BreedTip{}}
}

func (f *fakeTipsCache) Get(ctx context.Context, breed string) (breedtips.BreedTip, error) {
	if f.getErr != nil {
		return breedtips.BreedTip{}, f.getErr
	}
	t, ok := f.items[breedtips.Key(breed)]
	if !ok {
		return breedtips.BreedTip{}, breedtips.ErrNotFound
	}
	return t, nil
}

func (f *fakeTipsCache) Upsert(ctx context.Context, t breedtips.BreedTip) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.items[breedtips.Key(t.Breed)] = t
	return nil
}

func beagleOwner() *fakePets {
	return &fakePets{byOwner: map[string]pets.Pet{
		"owner-1": {ID: "p1", OwnerUserID: "owner-1", Name: "Milo", Breed: "Beagle", Age: 3},
	}}
}

// -------------------------
// Chat
// -------------------------

func TestService_Chat(t *testing.T) {
	chat := &fakeChat{reply: "  Beagles love to sniff.  "}
	svc := NewService(beagleOwner(), chat, nil, WithModels("chat-m", "", ""))

	reply, err := svc.Chat(context.Background(), "Tell me about beagles")
	require.NoError(t, err)
	require.Equal(t, "  Beagles love to sniff.  ", reply)
	require.Len(t, chat.calls, 1)
	require.Equal(t, "chat-m", chat.calls[0].Model)
	require.Equal(t, DefaultTipsModel, svc.tipsModel)
}

func TestService_Chat_EmptyCompletionUsesDefault(t *testing.T) {
	svc := NewService(beagleOwner(), &fakeChat{reply: ""}, nil)

	reply, err := svc.Chat(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, DefaultReply, reply)
}

func TestService_Chat_Errors(t *testing.T) {
	chat := &fakeChat{}
	svc := NewService(beagleOwner(), chat, nil)

	_, err := svc.Chat(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.Empty(t, chat.calls)

	upstream := &inference.UpstreamError{Provider: "together", StatusCode: 429, Body: "rate limited", Err: inference.ErrBadStatus}
	chat.err = upstream
	_, err = svc.Chat(context.Background(), "hi")
	require.ErrorIs(t, err, inference.ErrBadStatus)

	_, err = NewService(beagleOwner(), nil, nil).Chat(context.Background(), "hi")
	require.ErrorIs(t, err, inference.ErrUnavailable)
}

// -------------------------
// Tips
// -------------------------

func TestService_Tips_NoPetSkipsUpstream(t *testing.T) {
	chat := &fakeChat{reply: "- Should not be used"}
	svc := NewService(&fakePets{}, chat, nil)

	tips, err := svc.Tips(context.Background(), "owner-without-pets")
	require.NoError(t, err)
	require.Equal(t, []string{NoPetTip}, tips)
	require.Empty(t, chat.calls)
}

func TestService_Tips_UsesFirstPetBreed(t *testing.T) {
	chat := &fakeChat{reply: "- Walk daily\n- Brush weekly"}
	svc := NewService(beagleOwner(), chat, nil, WithTipsMaxTokens(99))

	tips, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Walk daily", "Brush weekly"}, tips)

	require.Len(t, chat.calls, 1)
	require.Equal(t, 99, chat.calls[0].MaxTokens)
	require.Contains(t, chat.calls[0].Messages[0].Content, "for a Beagle")
}

func TestService_Tips_EmptyExtractionIsValid(t *testing.T) {
	svc := NewService(beagleOwner(), &fakeChat{reply: "ok"}, nil)

	tips, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Empty(t, tips)
}

func TestService_Tips_Errors(t *testing.T) {
	svc := NewService(&fakePets{err: errors.New("db down")}, &fakeChat{}, nil)
	_, err := svc.Tips(context.Background(), "owner-1")
	require.ErrorContains(t, err, "db down")

	svc = NewService(beagleOwner(), &fakeChat{err: &inference.UpstreamError{Err: inference.ErrUnavailable}}, nil)
	_, err = svc.Tips(context.Background(), "owner-1")
	require.ErrorIs(t, err, inference.ErrUnavailable)
}

func TestService_Tips_CacheReadThrough(t *testing.T) {
	chat := &fakeChat{reply: "- Walk daily"}
	cache := newFakeTipsCache()
	svc := NewService(beagleOwner(), chat, nil, WithTipsCache(cache, 0))

	first, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)
	second, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, chat.calls, 1)
	require.Equal(t, 1, cache.puts)
	require.Contains(t, cache.items, "beagle")
}

func TestService_Tips_CacheTTLExpires(t *testing.T) {
	chat := &fakeChat{reply: "- Fresh tip"}
	cache := newFakeTipsCache()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.items["beagle"] = breedtips.BreedTip{Breed: "beagle", Tips: []string{"Stale tip"}, UpdatedAt: now.Add(-48 * time.Hour)}

	svc := NewService(beagleOwner(), chat, nil, WithTipsCache(cache, 24*time.Hour))
	svc.now = func() time.Time { return now }

	tips, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Fresh tip"}, tips)
	require.Len(t, chat.calls, 1)
	require.Equal(t, now, cache.items["beagle"].UpdatedAt)
}

func TestService_Tips_CacheFailuresDoNotFailRequest(t *testing.T) {
	chat := &fakeChat{reply: "- Walk daily"}
	cache := newFakeTipsCache()
	cache.getErr = errors.New("cache read boom")
	cache.putErr = errors.New("cache write boom")
	svc := NewService(beagleOwner(), chat, nil, WithTipsCache(cache, 0))

	tips, err := svc.Tips(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Walk daily"}, tips)
	require.Equal(t, 1, cache.puts)
}

// -------------------------
// FAQs
// -------------------------

func TestService_FAQs(t *testing.T) {
	chat := &fakeChat{reply: "- Question: Shed? Answer: Yes.\n- Question: Bark? Answer: A lot."}
	svc := NewService(beagleOwner(), chat, nil, WithModels("", "", "faq-m"))

	faqs, err := svc.FAQs(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, []FAQ{{Question: "Shed?", Answer: "Yes."}, {Question: "Bark?", Answer: "A lot."}}, faqs)
	require.Equal(t, "faq-m", chat.calls[0].Model)
}

func TestService_FAQs_GapsReturnEmpty(t *testing.T) {
	chat := &fakeChat{reply: "- Question: x? Answer: y"}
	petsNoBreed := &fakePets{byOwner: map[string]pets.Pet{"owner-2": {ID: "p2", OwnerUserID: "owner-2", Breed: " "}}}

	for name, tc := range map[string]struct {
		lookup PetLookup
		owner  string
	}{
		"no owner": {beagleOwner(), ""},
		"no pet":   {beagleOwner(), "stranger"},
		"no breed": {petsNoBreed, "owner-2"},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(tc.lookup, chat, nil)
			faqs, err := svc.FAQs(context.Background(), tc.owner)
			require.NoError(t, err)
			require.NotNil(t, faqs)
			require.Empty(t, faqs)
		})
	}
	require.Empty(t, chat.calls)
}

// -------------------------
// Identify
// -------------------------

func TestService_IdentifyBreed(t *testing.T) {
	cls := &fakeClassifier{preds: []inference.Prediction{{Label: "Labrador", Score: 0.9}, {Label: "Pug", Score: 0.05}}}
	svc := NewService(beagleOwner(), nil, cls)

	breed, err := svc.IdentifyBreed(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.Equal(t, "Labrador", breed)
	require.Equal(t, []byte("img"), cls.got)
}

func TestService_IdentifyBreed_Errors(t *testing.T) {
	svc := NewService(beagleOwner(), nil, &fakeClassifier{})
	_, err := svc.IdentifyBreed(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoImage)

	_, err = svc.IdentifyBreed(context.Background(), []byte("img"))
	require.ErrorIs(t, err, inference.ErrMalformedResponse)

	svc = NewService(beagleOwner(), nil, &fakeClassifier{err: &inference.UpstreamError{Err: inference.ErrInvalidJSON}})
	_, err = svc.IdentifyBreed(context.Background(), []byte("img"))
	require.ErrorIs(t, err, inference.ErrInvalidJSON)

	_, err = NewService(beagleOwner(), nil, nil).IdentifyBreed(context.Background(), []byte("img"))
	require.ErrorIs(t, err, inference.ErrUnavailable)
}
