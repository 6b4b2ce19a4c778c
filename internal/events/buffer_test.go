package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	Context("buffer", func() {
		It("adds successfully", func() {
			buffer := newBuffer()

			// first
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg1")})
			Expect(buffer.Size()).To(Equal(1))
			Expect(buffer.head).NotTo(BeNil())
			Expect(buffer.tail).NotTo(BeNil())

			// second
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg2")})
			Expect(buffer.Size()).To(Equal(2))
			Expect(buffer.head).NotTo(BeNil())
			Expect(buffer.tail).NotTo(BeNil())

			Expect(buffer.head.Data).To(Equal([]byte("msg1")))
			Expect(buffer.tail.Data).To(Equal([]byte("msg2")))

			// third
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg3")})
			Expect(buffer.Size()).To(Equal(3))
			Expect(buffer.head).NotTo(BeNil())
			Expect(buffer.tail).NotTo(BeNil())

			Expect(buffer.head.Data).To(Equal([]byte("msg1")))
			Expect(buffer.tail.Data).To(Equal([]byte("msg3")))
		})

		It("pops in insertion order", func() {
			buffer := newBuffer()

			// first
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg1")})
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg2")})
			buffer.PushBack(&message{Kind: JobMessageKind, Data: []byte("msg3")})
			Expect(buffer.Size()).To(Equal(3))

			m := buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(m.Data).To(Equal([]byte("msg1")))
			Expect(buffer.Size()).To(Equal(2))

			m = buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(m.Data).To(Equal([]byte("msg2")))
			Expect(buffer.Size()).To(Equal(1))

			m = buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(m.Data).To(Equal([]byte("msg3")))
			Expect(buffer.Size()).To(Equal(0))
			Expect(buffer.head).To(BeNil())
			Expect(buffer.tail).To(BeNil())

			m = buffer.Pop()
			Expect(m).To(BeNil())
		})
	})
})
