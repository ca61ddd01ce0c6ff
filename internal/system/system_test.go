package system_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/system"
)

func mustBody(name string, mass float64, pos dynamo.Vec) *dynamo.Body {
	b, err := dynamo.NewBody(name, mass, 1, pos, dynamo.Vec{})
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("SolarSystem", func() {
	var sys *system.SolarSystem

	BeforeEach(func() {
		sys = system.New("sol")
		Expect(sys.AddBody(mustBody("sun", 1000, dynamo.Vec{}))).To(Succeed())
		Expect(sys.AddBody(mustBody("earth", 1, dynamo.Vec{100, 0, 0}))).To(Succeed())
		Expect(sys.AddBody(mustBody("mars", 0.5, dynamo.Vec{150, 0, 0}))).To(Succeed())
	})

	It("keeps insertion order", func() {
		Expect(sys.Names()).To(Equal([]string{"sun", "earth", "mars"}))
		bodies := sys.Bodies()
		Expect(bodies).To(HaveLen(3))
		Expect(bodies[1].Name()).To(Equal("earth"))
	})

	It("has a name and an advisory timestep", func() {
		Expect(sys.Name()).To(Equal("sol"))
		Expect(sys.TimeStep()).To(Equal(system.DefaultTimeStep))

		sys.SetTimeStep(0.25)
		Expect(sys.TimeStep()).To(Equal(0.25))

		sys.SetTimeStep(0)
		sys.SetTimeStep(-1)
		Expect(sys.TimeStep()).To(Equal(0.25))
	})

	Describe("AddBody", func() {
		It("rejects duplicate names", func() {
			err := sys.AddBody(mustBody("earth", 2, dynamo.Vec{}))
			Expect(err).To(MatchError(dynamo.ErrDuplicateName))
			Expect(sys.Len()).To(Equal(3))
		})

		It("rejects nil bodies as invalid mass", func() {
			Expect(sys.AddBody(nil)).To(MatchError(dynamo.ErrInvalidMass))
		})

		It("rejects a zero-value body with no mass", func() {
			b := &dynamo.Body{}
			Expect(sys.AddBody(b)).To(MatchError(dynamo.ErrInvalidMass))
		})
	})

	Describe("lookup", func() {
		It("finds bodies by name and returns the shared reference", func() {
			b, err := sys.Body("earth")
			Expect(err).NotTo(HaveOccurred())
			b.SetPosition(dynamo.Vec{0, 100, 0})

			again, _ := sys.Body("earth")
			Expect(again.Position()).To(Equal(dynamo.Vec{0, 100, 0}))
		})

		It("fails with ErrNotFound for unknown names", func() {
			_, err := sys.Body("pluto")
			Expect(err).To(MatchError(dynamo.ErrNotFound))
		})

		DescribeTable("by index",
			func(index int, want string, wantErr error) {
				b, err := sys.BodyAt(index)
				if wantErr != nil {
					Expect(err).To(MatchError(wantErr))
					return
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Name()).To(Equal(want))
			},
			Entry("first", 0, "sun", nil),
			Entry("last", 2, "mars", nil),
			Entry("negative", -1, "", dynamo.ErrIndexOutOfRange),
			Entry("past end", 3, "", dynamo.ErrIndexOutOfRange),
		)
	})

	Describe("RemoveBody", func() {
		It("removes and preserves the order of the rest", func() {
			Expect(sys.RemoveBody("earth")).To(Succeed())
			Expect(sys.Names()).To(Equal([]string{"sun", "mars"}))
		})

		It("fails with ErrNotFound when absent", func() {
			Expect(sys.RemoveBody("pluto")).To(MatchError(dynamo.ErrNotFound))
			Expect(sys.Len()).To(Equal(3))
		})

		It("frees the name for reuse", func() {
			Expect(sys.RemoveBody("mars")).To(Succeed())
			Expect(sys.AddBody(mustBody("mars", 3, dynamo.Vec{}))).To(Succeed())
			Expect(sys.Names()).To(Equal([]string{"sun", "earth", "mars"}))
		})
	})

	It("clones deeply", func() {
		c := sys.Clone()
		b, _ := c.Body("sun")
		b.SetPosition(dynamo.Vec{5, 5, 5})

		orig, _ := sys.Body("sun")
		Expect(orig.Position()).To(Equal(dynamo.Vec{}))
		Expect(c.Names()).To(Equal(sys.Names()))
		Expect(c.TimeStep()).To(Equal(sys.TimeStep()))
	})
})
