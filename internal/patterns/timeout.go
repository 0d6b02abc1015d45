package patterns

import "time"

// DefaultTimeout is the default timeout for backend HTTP requests
const DefaultTimeout = 3 * time.Second

// SubmitTimeout is a longer timeout for order submission, which the
// backend may take a while to acknowledge
const SubmitTimeout = 10 * time.Second
