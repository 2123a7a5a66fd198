package ecosystem

// Deployment records the component addresses produced by one bootstrap run.
type Deployment struct {
	Deployer   [20]byte
	Token      [20]byte
	Reserve    [20]byte
	Rewards    [20]byte
	DeployedAt uint64
}

// Clone returns a copy of the deployment record.
func (d *Deployment) Clone() *Deployment {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}
