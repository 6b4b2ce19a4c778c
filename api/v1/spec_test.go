package v1_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
)

var _ = Describe("embedded spec", func() {
	It("is a valid document", func() {
		swagger, err := v1.GetSwagger()
		Expect(err).To(BeNil())
		Expect(swagger.Validate(context.TODO())).To(Succeed())
	})

	It("matches openapi.yaml", func() {
		swagger, err := v1.GetSwagger()
		Expect(err).To(BeNil())
		fromFile, err := openapi3.NewLoader().LoadFromFile("openapi.yaml")
		Expect(err).To(BeNil())

		Expect(swagger.Paths.Len()).To(Equal(fromFile.Paths.Len()))
		for path, item := range fromFile.Paths.Map() {
			embedded := swagger.Paths.Find(path)
			Expect(embedded).ToNot(BeNil(), path)
			for method, op := range item.Operations() {
				Expect(embedded.GetOperation(method)).ToNot(BeNil(), method+" "+path)
				Expect(embedded.GetOperation(method).OperationID).To(Equal(op.OperationID))
			}
		}
		Expect(swagger.Components.Schemas).To(HaveLen(len(fromFile.Components.Schemas)))
	})
})
