package model

type MemPerm struct {
	CanRead    bool
	CanWrite   bool
	CanExecute bool
	IsShared   bool
	IsPrivate  bool // copy on write
}

// MemRegion is one line of /proc/<pid>/maps.
type MemRegion struct {
	StartAddress uint64
	EndAddress   uint64
	Perm         MemPerm
	Offset       uint64
	DevMajor     uint32
	DevMinor     uint32
	Inode        uint64
	Pathname     string
}

func (r MemRegion) Size() uint64 {
	return r.EndAddress - r.StartAddress
}

// MemMap is one entry of /proc/<pid>/smaps. Sizes are in kB.
type MemMap struct {
	Region MemRegion

	Size           uint64
	KernelPageSize uint64
	MMUPageSize    uint64
	RSS            uint64
	PSS            uint64
	PSSDirty       uint64
	SharedClean    uint64
	SharedDirty    uint64
	PrivateClean   uint64
	PrivateDirty   uint64
	Referenced     uint64
	Anonymous      uint64
	KSM            uint64
	LazyFree       uint64
	AnonHugePages  uint64
	ShmemPmdMapped uint64
	FilePmdMapped  uint64
	SharedHugetlb  uint64
	PrivateHugetlb uint64
	Swap           uint64
	SwapPSS        uint64
	Locked         uint64

	THPEligible bool
	VMFlags     []string
}
