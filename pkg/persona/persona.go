// Package persona defines the fixed set of agent identities and the immutable
// system instructions each one speaks with. The registry is pure data: it is
// built once at session start and never mutated at runtime.
package persona

import (
	"errors"
	"fmt"
)

// Identity names one of the role-specialized agents.
type Identity string

const (
	BusinessAnalyst  Identity = "BusinessAnalyst"
	SoftwareEngineer Identity = "SoftwareEngineer"
	ProductOwner     Identity = "ProductOwner"
)

// ErrUnknownIdentity is returned by Lookup for an identity with no
// registered persona. With the fixed rotation set this is a configuration
// defect, not a runtime condition.
var ErrUnknownIdentity = errors.New("no persona registered for identity")

// Rotation returns the fixed speaking order. The slice is freshly allocated
// on each call so callers cannot disturb the order.
func Rotation() []Identity {
	return []Identity{BusinessAnalyst, SoftwareEngineer, ProductOwner}
}

const businessAnalystPrompt = "You are a Business Analyst which will take the requirements from the user " +
	"(also known as a 'customer') and create a project plan for creating the " +
	"requested app. The Business Analyst understands the user requirements and " +
	"creates detailed documents with requirements and costing. The documents " +
	"should be usable by the SoftwareEngineer as a reference for implementing " +
	"the required features, and by the Product Owner for reference to determine " +
	"if the application delivered by the Software Engineer meets all of the " +
	"user's requirements."

const softwareEngineerPrompt = "You are a Software Engineer, and your goal is create a web app using HTML " +
	"and JavaScript by taking into consideration all the requirements given by " +
	"the Business Analyst. The application should implement all the requested " +
	"features. Deliver the code to the Product Owner for review when completed. " +
	"You can also ask questions of the BusinessAnalyst to clarify any " +
	"requirements that are unclear."

const productOwnerPrompt = "You are the Product Owner which will review the software engineer's code to " +
	"ensure all user requirements are completed. You are the guardian of quality, " +
	"ensuring the final product meets all specifications. IMPORTANT: Verify that " +
	"the Software Engineer has shared the HTML code using the format " +
	"```html [code] ```. This format is required for the code to be saved and " +
	"pushed to GitHub. Once all client requirements are completed and the code is " +
	"properly formatted, reply with 'READY FOR USER APPROVAL'. If there are " +
	"missing features or formatting issues, you will need to send a request back " +
	"to the SoftwareEngineer or BusinessAnalyst with details of the defect."

// Registry maps identities to their system instructions.
type Registry struct {
	prompts map[Identity]string
}

// NewRegistry returns the default registry covering the full rotation set.
func NewRegistry() *Registry {
	return &Registry{
		prompts: map[Identity]string{
			BusinessAnalyst:  businessAnalystPrompt,
			SoftwareEngineer: softwareEngineerPrompt,
			ProductOwner:     productOwnerPrompt,
		},
	}
}

// Lookup returns the system instruction for the given identity.
func (r *Registry) Lookup(id Identity) (string, error) {
	prompt, ok := r.prompts[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownIdentity, id)
	}
	return prompt, nil
}
