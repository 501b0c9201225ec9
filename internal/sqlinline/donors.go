package sqlinline

const QInsertDonor = `--sql 820b3503-7527-4cf4-ad91-f2d3788ed205
insert into donors(id, name, email, address, phone)
values ($1::uuid, $2::text, nullif($3::text, ''), $4::text, $5::text)
returning id, name, email, address, phone, created_at;
`

const QUpdateDonor = `--sql b1dea572-cbf0-4855-b95f-dd583a5880a1
update donors
set name = $2::text,
    email = nullif($3::text, ''),
    address = $4::text,
    phone = $5::text
where id = $1::uuid
returning id, name, email, address, phone, created_at;
`

const QSelectDonorByID = `--sql ef8cde32-5849-432b-ad13-ebba4fd6c341
select id, name, email, address, phone, created_at
from donors
where id = $1::uuid;
`

const QSearchDonors = `--sql 4ff61853-5227-44d8-8ea4-a90eaf68ad57
select id, name, email, address, phone, created_at
from donors
where name ilike '%' || $1::text || '%'
   or email ilike '%' || $1::text || '%'
   or phone ilike '%' || $1::text || '%'
order by name
limit $2::int;
`

const QListDonorsWithCounts = `--sql cca26df7-6235-4937-8785-ba0a437b97ab
select d.id, d.name, d.email, d.address, d.phone, d.created_at,
       count(distinct dn.id) as donation_count,
       count(it.id) as item_count
from donors d
left join donations dn on dn.donor_id = d.id
left join donation_items it on it.donation_id = dn.id
group by d.id, d.name, d.email, d.address, d.phone, d.created_at
order by d.name;
`
