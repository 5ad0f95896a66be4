package sequencer_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

const ms = time.Millisecond

var _ = Describe("Sequencer", func() {
	var (
		clk     *sequencer.ManualClock
		seq     *sequencer.Sequencer
		visited []sequencer.Phase
	)

	BeforeEach(func() {
		clk = sequencer.NewManualClock()
		visited = []sequencer.Phase{sequencer.Idle}
		seq = sequencer.New(clk, sequencer.WithObserver(sequencer.ObserverFunc(func(tr sequencer.Transition) {
			visited = append(visited, tr.To)
		})))
	})

	revealMenu := func(card int) {
		GinkgoHelper()
		ok, err := seq.SelectCard(card)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		clk.Advance(4500 * ms)
		Expect(seq.Phase()).To(Equal(sequencer.MenuRevealing))
	}

	It("starts idle with every card present", func() {
		snap := seq.Snapshot()
		Expect(snap.Phase).To(Equal(sequencer.Idle))
		_, picked := snap.Selected()
		Expect(picked).To(BeFalse())
		for id := 0; id < deck.NumCards(); id++ {
			Expect(snap.CardPresent(id)).To(BeTrue())
			Expect(snap.CardFading(id)).To(BeFalse())
		}
		Expect(snap.TitleBarVisible()).To(BeFalse())
		Expect(snap.MenuVisible()).To(BeFalse())
	})

	Context("card selection", func() {
		It("recolors and hides siblings after 1.5s, then centers after another 1.5s", func() {
			ok, err := seq.SelectCard(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(seq.Phase()).To(Equal(sequencer.Recoloring))

			clk.Advance(1499 * ms)
			Expect(seq.Snapshot().Flags.Has(sequencer.FlagRecolored)).To(BeFalse())

			clk.Advance(1 * ms)
			snap := seq.Snapshot()
			Expect(snap.Phase).To(Equal(sequencer.SiblingsFading))
			Expect(snap.CardRecolored(2)).To(BeTrue())
			Expect(snap.CardPresent(2)).To(BeTrue())
			for _, id := range []int{0, 1, 3} {
				Expect(snap.CardFading(id)).To(BeTrue())
				Expect(snap.CardPresent(id)).To(BeFalse())
			}
			Expect(snap.CardFading(2)).To(BeFalse())

			clk.Advance(1500 * ms)
			snap = seq.Snapshot()
			Expect(snap.Phase).To(Equal(sequencer.Centering))
			Expect(snap.CardFading(2)).To(BeTrue())
			for _, id := range []int{0, 1, 3} {
				Expect(snap.CardFading(id)).To(BeFalse())
			}
		})

		It("shows the title bar at 4.0s and the menu at 4.5s", func() {
			_, _ = seq.SelectCard(0)

			clk.Advance(3999 * ms)
			Expect(seq.Snapshot().TitleBarVisible()).To(BeFalse())
			clk.Advance(1 * ms)
			Expect(seq.Snapshot().TitleBarVisible()).To(BeTrue())
			Expect(seq.Phase()).To(Equal(sequencer.TitleBarRevealing))

			clk.Advance(499 * ms)
			Expect(seq.Snapshot().MenuVisible()).To(BeFalse())
			clk.Advance(1 * ms)
			Expect(seq.Snapshot().MenuVisible()).To(BeTrue())
			Expect(seq.Phase()).To(Equal(sequencer.MenuRevealing))
			Expect(clk.Pending()).To(BeZero())
		})

		It("keeps the first pick when a second card is clicked", func() {
			ok, _ := seq.SelectCard(1)
			Expect(ok).To(BeTrue())
			clk.Advance(10 * ms)
			before := seq.Snapshot()

			ok, err := seq.SelectCard(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(seq.Snapshot()).To(Equal(before))

			clk.RunUntilIdle()
			card, picked := seq.Snapshot().Selected()
			Expect(picked).To(BeTrue())
			Expect(card).To(Equal(1))
		})

		It("ignores every later selection once the sequence has moved on", func() {
			revealMenu(1)
			before := seq.Snapshot()
			for id := 0; id < deck.NumCards(); id++ {
				ok, err := seq.SelectCard(id)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			}
			Expect(seq.Snapshot()).To(Equal(before))
		})

		It("rejects unknown card ids", func() {
			ok, err := seq.SelectCard(7)
			Expect(ok).To(BeFalse())
			Expect(err).To(MatchError(sequencer.ErrUnknownCard))
			Expect(seq.Phase()).To(Equal(sequencer.Idle))

			_, err = seq.SelectCard(-1)
			Expect(err).To(MatchError(sequencer.ErrUnknownCard))
		})
	})

	Context("menu selection", func() {
		It("confirms the entry after 0.5s and dismisses the menu after 1.5s", func() {
			revealMenu(0)

			ok, err := seq.SelectMenuEntry("選單 2")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(seq.Phase()).To(Equal(sequencer.MenuRevealing))
			Expect(seq.Snapshot().Pending).To(Equal("選單 2"))

			clk.Advance(499 * ms)
			Expect(seq.Snapshot().TitleText()).To(BeEmpty())

			clk.Advance(1 * ms)
			snap := seq.Snapshot()
			Expect(snap.Phase).To(Equal(sequencer.MenuChoiceConfirming))
			Expect(snap.EntryChosen("選單 2")).To(BeTrue())
			Expect(snap.TitleText()).To(Equal("選單 2"))
			Expect(snap.MenuVisible()).To(BeTrue())

			clk.Advance(999 * ms)
			Expect(seq.Snapshot().MenuVisible()).To(BeTrue())
			clk.Advance(1 * ms)
			snap = seq.Snapshot()
			Expect(snap.Phase).To(Equal(sequencer.MenuDismissing))
			Expect(snap.MenuVisible()).To(BeFalse())
			Expect(snap.TitleBarVisible()).To(BeFalse())

			clk.Advance(500 * ms)
			Expect(seq.Snapshot().Done()).To(BeTrue())
			Expect(clk.Pending()).To(BeZero())
		})

		It("has no effect before the menu is revealed", func() {
			for _, wait := range []time.Duration{0, 10 * ms, 1500 * ms, 1500 * ms, 1000 * ms, 480 * ms} {
				if wait == 0 {
					before := seq.Snapshot()
					ok, err := seq.SelectMenuEntry("選單 1")
					Expect(err).NotTo(HaveOccurred())
					Expect(ok).To(BeFalse())
					Expect(seq.Snapshot()).To(Equal(before))
					_, _ = seq.SelectCard(3)
					continue
				}
				clk.Advance(wait)
				before := seq.Snapshot()
				Expect(before.Phase).To(BeNumerically("<", sequencer.MenuRevealing))
				ok, err := seq.SelectMenuEntry("選單 1")
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
				Expect(seq.Snapshot()).To(Equal(before))
			}
		})

		It("keeps the first choice while the confirmation is pending", func() {
			revealMenu(2)
			ok, _ := seq.SelectMenuEntry("選單 1")
			Expect(ok).To(BeTrue())

			clk.Advance(100 * ms)
			ok, err := seq.SelectMenuEntry("選單 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			clk.RunUntilIdle()
			Expect(seq.Snapshot().Entry).To(Equal("選單 1"))
		})

		It("rejects unknown labels", func() {
			revealMenu(2)
			ok, err := seq.SelectMenuEntry("選單 9")
			Expect(ok).To(BeFalse())
			Expect(err).To(MatchError(sequencer.ErrUnknownMenuEntry))
			Expect(seq.Snapshot().Flags.Has(sequencer.FlagEntryPending)).To(BeFalse())
		})
	})

	Context("teardown", func() {
		It("cancels the pending timer on Close", func() {
			_, _ = seq.SelectCard(1)
			Expect(clk.Pending()).To(Equal(1))

			seq.Close()
			Expect(seq.Closed()).To(BeTrue())
			Expect(clk.Pending()).To(BeZero())

			clk.Advance(10 * time.Second)
			Expect(seq.Phase()).To(Equal(sequencer.Recoloring))
		})

		It("ignores input after Close", func() {
			seq.Close()
			ok, err := seq.SelectCard(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(seq.Phase()).To(Equal(sequencer.Idle))
		})

		It("does not arm a timer when an observer closes the session", func() {
			seq.AddObserver(sequencer.ObserverFunc(func(tr sequencer.Transition) {
				if tr.To == sequencer.SiblingsFading {
					seq.Close()
				}
			}))
			_, _ = seq.SelectCard(0)
			clk.RunUntilIdle()
			Expect(seq.Phase()).To(Equal(sequencer.SiblingsFading))
			Expect(clk.Pending()).To(BeZero())
		})
	})

	It("walks the full sequence without skipping a phase", func() {
		revealMenu(3)
		_, _ = seq.SelectMenuEntry("選單 3")
		clk.RunUntilIdle()
		Expect(visited).To(Equal(sequencer.Phases()))
		Expect(clk.Now()).To(Equal(6500 * ms))
	})

	It("only moves forward under random input", func() {
		rng := rand.New(rand.NewSource(GinkgoRandomSeed()))
		entries := deck.MenuEntries()

		for run := 0; run < 50; run++ {
			clk = sequencer.NewManualClock()
			var prev sequencer.Snapshot
			var phases []sequencer.Phase
			s := sequencer.New(clk, sequencer.WithObserver(sequencer.ObserverFunc(func(tr sequencer.Transition) {
				Expect(tr.From).To(Equal(prev.Phase))
				Expect(tr.To).To(Equal(tr.From + 1))
				Expect(prev.Flags &^ tr.Snapshot.Flags).To(BeZero())
				if c, ok := prev.Selected(); ok {
					Expect(tr.Snapshot.Card).To(Equal(c))
				}
				if prev.Flags.Has(sequencer.FlagEntryChosen) {
					Expect(tr.Snapshot.Entry).To(Equal(prev.Entry))
				}
				prev = tr.Snapshot
				phases = append(phases, tr.To)
			})))

			for i := 0; i < 40; i++ {
				switch rng.Intn(3) {
				case 0:
					_, err := s.SelectCard(rng.Intn(deck.NumCards()))
					Expect(err).NotTo(HaveOccurred())
				case 1:
					_, err := s.SelectMenuEntry(entries[rng.Intn(len(entries))])
					Expect(err).NotTo(HaveOccurred())
				default:
					clk.Advance(time.Duration(rng.Intn(800)) * ms)
				}
			}

			for i, p := range phases {
				Expect(p).To(Equal(sequencer.Phase(i + 1)))
			}
		}
	})
})

var _ = DescribeTable("Delay",
	func(from sequencer.Phase, want time.Duration, ok bool) {
		got, found := sequencer.Delay(from)
		Expect(found).To(Equal(ok))
		Expect(got).To(Equal(want))
	},
	Entry("idle waits for input", sequencer.Idle, time.Duration(0), false),
	Entry("recoloring", sequencer.Recoloring, 1500*ms, true),
	Entry("siblings fading", sequencer.SiblingsFading, 1500*ms, true),
	Entry("centering", sequencer.Centering, 1000*ms, true),
	Entry("title bar", sequencer.TitleBarRevealing, 500*ms, true),
	Entry("menu confirm", sequencer.MenuRevealing, 500*ms, true),
	Entry("menu choice", sequencer.MenuChoiceConfirming, 1000*ms, true),
	Entry("dismiss", sequencer.MenuDismissing, 500*ms, true),
	Entry("terminal", sequencer.Terminal, time.Duration(0), false),
)

var _ = DescribeTable("AwaitsInput",
	func(p sequencer.Phase, want bool) {
		Expect(sequencer.AwaitsInput(p)).To(Equal(want))
	},
	Entry("idle waits for a card", sequencer.Idle, true),
	Entry("recoloring is timed", sequencer.Recoloring, false),
	Entry("menu waits for an entry", sequencer.MenuRevealing, true),
	Entry("confirming is timed", sequencer.MenuChoiceConfirming, false),
	Entry("terminal", sequencer.Terminal, false),
)
