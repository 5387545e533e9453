package engine

import "github.com/talgya/fieldsim/internal/phi"

// All engine tuning lives here. Rates are per sim-second unless the name says
// otherwise; radii and distances are in world units.
var (
	// Probe flow.
	probeGain     = 4.0         // inverse-mass acceleration scale along the descent direction
	probeDamp     = 0.88        // per-tick velocity retention
	densityMix    = phi.Psyche  // α weight of the density gradient in the descent direction
	probeRespawnR = 0.15        // respawn scatter radius around a living entity
	trailCap      = 20

	// Basin clustering and persistence.
	clusterRadius   = 0.22
	basinMatchR     = 0.28
	basinMergeR     = 0.14
	basinBlend      = phi.Psyche // EMA weight toward the fresh cluster center
	minClusterSize  = 4
	promoteFrames   = 12
	promoteCount    = 5

	// Promotion guards.
	occupyRadius    = 0.18 // no promotion on top of an existing entity
	anchorExclusion = 0.35 // no promotion this close to an anchor
	settleThreshold = 0.60 // max local gradient magnitude at a promotable basin
	initialEnergy   = 0.80

	// Competitive economics.
	suppressionRadius  = 0.30
	suppressionPenalty = 0.35 // energy per second taken from the loser of a pair
	captureRadius      = 0.25
	intakePerProbe     = 0.09 // energy per second per captured probe
	decayRate          = phi.Agnosis

	// Selection pressure.
	selectionRate  = phi.Agnosis // fraction of the budget distributed per second
	intakeWeight   = 0.7
	equalWeight    = 0.3
	dominanceTarget = 0.45
	dominanceTax    = phi.Being // tax rate per unit of excess dominance share

	// Saturating growth.
	strengthMax    = 3.0
	stabilityScale = 2.0

	// Distress lifecycle.
	graceWindow       = uint64(90) // ticks between first deficit and death
	recoveryThreshold = 0.35

	// Budget regulator.
	regulatorKp    = 0.15
	regulatorKi    = 0.02
	deadbandFrac   = 0.05       // deadband as a fraction of the budget
	integralClampX = 2.0        // integral clamp as a multiple of the budget
	integralDecay  = phi.Matter // integral bleed per second inside the deadband

	// World physics.
	gravityGain   = 0.12
	gravityCap    = 0.50
	contactRadius = 0.12
	repulsion     = 1.8
	lockWindow    = uint64(14)
	lockEngageR   = 0.144 // contactRadius * 1.2
	releaseKick   = 0.12
	slipDamp      = 0.5
	dragRate      = 0.45
	minSpeed      = 0.02
	minKick       = 0.03
	maxSpeed      = 1.4
	wallRestitution = phi.Matter

	// Membrane (terminal gel regime).
	membraneRest    = 0.34
	membraneRange   = 0.80
	membraneSpring  = 0.90
	membraneVisc    = 0.35
	surfaceTension  = 0.25

	// Cluster ceiling.
	ceilingRadius = 0.45
	crowdTax      = 0.20 // energy per second per entity over the soft ceiling

	// Defaults for Config.
	defaultBudget      = 24.0
	defaultHalfExtent  = 2.0
	defaultOverflow    = 0.25
	defaultLatticeCap  = 12
	defaultSoftCeiling = 4
	defaultProbeCount  = 96
)
